package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsArray(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{name: "nil", in: nil, want: false},
		{name: "string", in: "a", want: false},
		{name: "int", in: 1, want: false},
		{name: "bytes", in: []byte("ab"), want: false},
		{name: "string slice", in: []string{"a"}, want: true},
		{name: "any slice", in: []any{}, want: true},
		{name: "array", in: [2]int{1, 2}, want: true},
		{name: "map", in: map[string]any{}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsArray(tc.in))
		})
	}
}

func TestFlattenDeep(t *testing.T) {
	require.Equal(t, []any{"x"}, FlattenDeep("x"))
	require.Equal(t, []any{}, FlattenDeep([]any{}))
	require.Equal(t, []any{"a", "b", "a"}, FlattenDeep([]any{[]string{"a"}, []any{"b", []any{"a"}}}))
	require.Equal(t, []any{1, 2, 3}, FlattenDeep([][]int{{1}, {2, 3}}))
	require.Equal(t, []any{nil, true}, FlattenDeep([]any{nil, []any{[]any{true}}}))
}
