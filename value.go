package urlq

import (
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is the value of a single query field. It is either a scalar
// (a string, number, bool or nil) or a sequence of unique strings that is
// rendered as repeated key=value pairs. The sequence without members, Empty,
// is what an array without leaves normalizes to.
//
// The zero Value is the absent scalar.
type Value struct {
	v mo.Either[any, []string]
}

// Scalar wraps a primitive value.
func Scalar(v any) Value {
	return Value{v: mo.Left[any, []string](v)}
}

// Sequence builds a sequence value from items. Later duplicates are dropped
// and the first occurrence order is kept. It panics when items is empty.
func Sequence(items ...string) Value {
	lo.Assert(len(items) > 0, "urlq: sequence must not be empty")
	return Value{v: mo.Right[any, []string](lo.Uniq(items))}
}

// Empty returns the sequence without members. It takes part in a merge like
// any other value but serializes to nothing, even when empty fields are saved.
func Empty() Value {
	return Value{v: mo.Right[any, []string]([]string{})}
}

// IsEmpty reports whether v is the sequence without members.
func (v Value) IsEmpty() bool {
	items, ok := v.sequence()
	return ok && len(items) == 0
}

// IsSequence reports whether v holds a sequence, Empty included.
func (v Value) IsSequence() bool {
	_, ok := v.sequence()
	return ok
}

func (v Value) sequence() ([]string, bool) {
	items, ok := v.v.Right()
	return items, ok && items != nil
}

func (v Value) scalar() any {
	if s, ok := v.v.Left(); ok {
		return s
	}
	return nil
}

// Strings returns the members of a sequence, or the string form of a scalar
// as a single member.
func (v Value) Strings() []string {
	if items, ok := v.sequence(); ok {
		return slices.Clone(items)
	}
	return []string{v.String()}
}

// String returns the string form of the value. Sequences are joined with a
// comma, nil renders as the empty string.
func (v Value) String() string {
	if items, ok := v.sequence(); ok {
		return strings.Join(items, ",")
	}
	return stringify(v.scalar())
}

// Truthy reports whether the value counts as present when empty fields are
// not saved. Sequences, Empty included, are always truthy. Scalars are falsy when they are nil,
// the empty string, false, a numeric zero or NaN.
func (v Value) Truthy() bool {
	if v.IsSequence() {
		return true
	}
	switch s := v.scalar().(type) {
	case nil:
		return false
	case string:
		return s != ""
	case bool:
		return s
	case float32:
		return s != 0 && !math.IsNaN(float64(s))
	case float64:
		return s != 0 && !math.IsNaN(s)
	default:
		rv := reflect.ValueOf(s)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return !rv.IsZero()
		case reflect.Pointer, reflect.Interface:
			return !rv.IsNil()
		}
		return true
	}
}

// Equal reports whether two values are the same variant with equal contents.
// Scalars are compared strictly: "1" and 1 differ.
func (v Value) Equal(other Value) bool {
	a, aSeq := v.sequence()
	b, bSeq := other.sequence()
	switch {
	case aSeq && bSeq:
		return slices.Equal(a, b)
	case aSeq || bSeq:
		return false
	}
	return reflect.DeepEqual(v.scalar(), other.scalar())
}

func (v Value) MarshalJSON() ([]byte, error) {
	if items, ok := v.sequence(); ok {
		return json.Marshal(items)
	}
	return json.Marshal(v.scalar())
}

func (v Value) GoString() string {
	if v.IsEmpty() {
		return "Empty()"
	}
	if items, ok := v.sequence(); ok {
		return fmt.Sprintf("Sequence(%q)", items)
	}
	return fmt.Sprintf("Scalar(%#v)", v.scalar())
}

// stringify converts a primitive to its string form. Floats are written the
// way JavaScript writes numbers: shortest decimal form, with an exponent below
// 1e-6 and from 1e21 on.
func stringify(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		return formatFloat(n, 64)
	case float32:
		return formatFloat(float64(n), 32)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// stringifyLeaf is stringify for array leaves, where nil is written as "null".
func stringifyLeaf(v any) string {
	if v == nil {
		return "null"
	}
	return stringify(v)
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	// Go pads the exponent to two digits: 1e-07 is written 1e-7.
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, bitSize), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// FieldMap is an insertion ordered mapping from query keys to values.
// The zero FieldMap is empty and ready to use.
type FieldMap struct {
	pairs *orderedmap.OrderedMap[string, Value]
}

// NewFieldMap returns an empty FieldMap.
func NewFieldMap() *FieldMap {
	return &FieldMap{pairs: orderedmap.New[string, Value]()}
}

// Set stores value under key. An existing key keeps its position.
func (m *FieldMap) Set(key string, value Value) {
	if m.pairs == nil {
		m.pairs = orderedmap.New[string, Value]()
	}
	m.pairs.Set(key, value)
}

// Get returns the value stored under key.
func (m *FieldMap) Get(key string) mo.Option[Value] {
	return mo.TupleToOption(m.lookup(key))
}

func (m *FieldMap) lookup(key string) (Value, bool) {
	if m == nil || m.pairs == nil {
		return Value{}, false
	}
	return m.pairs.Get(key)
}

// Has reports whether key is present.
func (m *FieldMap) Has(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

// Len returns the number of keys.
func (m *FieldMap) Len() int {
	if m == nil || m.pairs == nil {
		return 0
	}
	return m.pairs.Len()
}

// IsEmpty reports whether the map holds no keys. A nil map is empty.
func (m *FieldMap) IsEmpty() bool {
	return m.Len() == 0
}

// Keys returns the keys in insertion order.
func (m *FieldMap) Keys() []string {
	if m.IsEmpty() {
		return nil
	}
	keys := make([]string, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates the entries in insertion order.
func (m *FieldMap) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil || m.pairs == nil {
			return
		}
		for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of m.
func (m *FieldMap) Clone() *FieldMap {
	c := NewFieldMap()
	for k, v := range m.All() {
		c.Set(k, v)
	}
	return c
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	if m.pairs == nil {
		return []byte("{}"), nil
	}
	return m.pairs.MarshalJSON()
}
