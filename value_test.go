package urlq

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// dump renders m as "key=value" lines in iteration order.
func dump(m *FieldMap) []string {
	var lines []string
	for k, v := range m.All() {
		lines = append(lines, k+"="+v.GoString())
	}
	return lines
}

func TestValue_Truthy(t *testing.T) {
	var ptr *int
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{name: "zero value", value: Value{}, want: false},
		{name: "nil", value: Scalar(nil), want: false},
		{name: "empty string", value: Scalar(""), want: false},
		{name: "string zero", value: Scalar("0"), want: true},
		{name: "string", value: Scalar("a"), want: true},
		{name: "false", value: Scalar(false), want: false},
		{name: "true", value: Scalar(true), want: true},
		{name: "int zero", value: Scalar(0), want: false},
		{name: "int", value: Scalar(3), want: true},
		{name: "uint8 zero", value: Scalar(uint8(0)), want: false},
		{name: "float zero", value: Scalar(0.0), want: false},
		{name: "NaN", value: Scalar(math.NaN()), want: false},
		{name: "float", value: Scalar(0.5), want: true},
		{name: "nil pointer", value: Scalar(ptr), want: false},
		{name: "sequence", value: Sequence(""), want: true},
		{name: "empty sequence", value: Empty(), want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.value.Truthy())
		})
	}
}

func TestValue_String(t *testing.T) {
	require.Equal(t, "", Value{}.String())
	require.Equal(t, "", Scalar(nil).String())
	require.Equal(t, "abc", Scalar("abc").String())
	require.Equal(t, "42", Scalar(42).String())
	require.Equal(t, "1.5", Scalar(1.5).String())
	require.Equal(t, "false", Scalar(false).String())
	require.Equal(t, "a,b", Sequence("a", "b").String())
	require.Equal(t, "", Empty().String())
	require.Equal(t, "1e+21", Scalar(1e21).String())
	require.Equal(t, "1e-7", Scalar(1e-7).String())
	require.Equal(t, "123456789", Scalar(123456789.0).String())
	require.Equal(t, "0", Scalar(math.Copysign(0, -1)).String())
	require.Equal(t, "NaN", Scalar(math.NaN()).String())
	require.Equal(t, "-Infinity", Scalar(math.Inf(-1)).String())
	require.Equal(t, []string{"x"}, Scalar("x").Strings())
	require.Equal(t, []string{"a", "b"}, Sequence("a", "b", "a").Strings())
}

func TestValue_Sequence(t *testing.T) {
	v := Sequence("b", "a", "b", "c", "a")
	require.True(t, v.IsSequence())
	require.Equal(t, []string{"b", "a", "c"}, v.Strings())
	require.False(t, Scalar("a").IsSequence())
	require.False(t, Value{}.IsSequence())
	require.Panics(t, func() { Sequence() })

	require.True(t, Empty().IsSequence())
	require.True(t, Empty().IsEmpty())
	require.False(t, Sequence("a").IsEmpty())
	require.False(t, Value{}.IsEmpty())
	require.Empty(t, Empty().Strings())
	require.True(t, Empty().Equal(Empty()))
	require.False(t, Empty().Equal(Scalar(nil)))

	// Strings returns a copy.
	items := v.Strings()
	items[0] = "z"
	require.Equal(t, []string{"b", "a", "c"}, v.Strings())
}

func TestValue_Equal(t *testing.T) {
	require.True(t, Scalar("1").Equal(Scalar("1")))
	require.False(t, Scalar("1").Equal(Scalar(1)))
	require.True(t, Scalar(nil).Equal(Value{}))
	require.True(t, Sequence("a", "b").Equal(Sequence("a", "b")))
	require.False(t, Sequence("a", "b").Equal(Sequence("b", "a")))
	require.False(t, Sequence("a").Equal(Scalar("a")))
}

func TestFieldMap(t *testing.T) {
	var zero FieldMap
	require.True(t, zero.IsEmpty())
	zero.Set("a", Scalar("1"))
	require.Equal(t, 1, zero.Len())

	var nilMap *FieldMap
	require.True(t, nilMap.IsEmpty())
	require.False(t, nilMap.Has("a"))
	require.Nil(t, nilMap.Keys())
	require.True(t, nilMap.Get("a").IsAbsent())

	m := NewFieldMap()
	m.Set("b", Scalar("x"))
	m.Set("a", Sequence("1", "2"))
	m.Set("b", Scalar("y"))
	require.Equal(t, []string{"b", "a"}, m.Keys())
	require.Equal(t, Scalar("y"), m.Get("b").MustGet())
	require.True(t, m.Has("a"))
	require.False(t, m.Has("c"))

	c := m.Clone()
	c.Set("c", Scalar(true))
	require.Equal(t, 2, m.Len())
	require.Equal(t, 3, c.Len())

	var keys []string
	for k := range c.All() {
		keys = append(keys, k)
		if k == "a" {
			break
		}
	}
	require.Equal(t, []string{"b", "a"}, keys)
}

func TestFieldMap_MarshalJSON(t *testing.T) {
	m := NewFieldMap()
	m.Set("b", Scalar("x"))
	m.Set("a", Sequence("1", "2"))
	m.Set("n", Scalar(nil))
	m.Set("f", Scalar(1.5))
	m.Set("e", Empty())
	bts, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"b":"x","a":["1","2"],"n":null,"f":1.5,"e":[]}`, string(bts))

	var zero FieldMap
	bts, err = json.Marshal(&zero)
	require.NoError(t, err)
	require.Equal(t, `{}`, string(bts))

	bts, err = json.Marshal(NewFieldMap())
	require.NoError(t, err)
	require.Equal(t, `{}`, string(bts))
}
