package urlq

import (
	"sort"

	"github.com/kcmvp/urlq/internal"
	"github.com/samber/lo"
)

// Field is a single caller supplied query field before normalization.
// Value may be any primitive or an arbitrarily nested slice of primitives.
type Field struct {
	Key   string
	Value any
}

// Input is the ordered set of fields handed to Build and SetQuery.
// A nil Input is valid and empty.
type Input []Field

// Fields builds an Input from alternating keys and values.
//
//	urlq.Fields("page", 2, "tag", []string{"go", "web"})
//
// It panics when kv has an odd length or a key is not a string.
func Fields(kv ...any) Input {
	lo.Assertf(len(kv)%2 == 0, "urlq: Fields expects key/value pairs, got %d arguments", len(kv))
	in := make(Input, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		lo.Assertf(ok, "urlq: key at position %d must be a string, got %T", i, kv[i])
		in = append(in, Field{Key: key, Value: kv[i+1]})
	}
	return in
}

// FromMap builds an Input from m. Go maps carry no order, so keys are sorted.
func FromMap(m map[string]any) Input {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return lo.Map(keys, func(k string, _ int) Field {
		return Field{Key: k, Value: m[k]}
	})
}

// Normalize turns in into a FieldMap. Scalars pass through unchanged. Arrays
// are flattened recursively, every leaf is converted to its string form (nil
// leaves become "null") and later duplicates are dropped. An array without
// leaves becomes Empty. A key repeated in in keeps its first position and its
// last value.
func Normalize(in Input) *FieldMap {
	m := NewFieldMap()
	for _, f := range in {
		m.Set(f.Key, normalizeValue(f.Value))
	}
	return m
}

func normalizeValue(raw any) Value {
	if v, ok := raw.(Value); ok {
		return v
	}
	if !internal.IsArray(raw) {
		return Scalar(raw)
	}
	leaves := internal.FlattenDeep(raw)
	if len(leaves) == 0 {
		return Empty()
	}
	return Sequence(lo.Map(leaves, func(leaf any, _ int) string {
		return stringifyLeaf(leaf)
	})...)
}
