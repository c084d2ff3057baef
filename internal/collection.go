package internal

import (
	"reflect"
)

// IsArray reports whether v is a Go slice or array. Byte slices are treated as
// scalars because they usually carry text.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case []byte:
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// FlattenDeep recursively flattens v into its leaves, keeping their order.
// A value that is not an array yields itself as the single leaf.
func FlattenDeep(v any) []any {
	if !IsArray(v) {
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	leaves := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		leaves = append(leaves, FlattenDeep(rv.Index(i).Interface())...)
	}
	return leaves
}
