package urlq

import (
	"fmt"
	"strings"
)

// Collision decides what happens to a key that is present both in the new
// fields and in the query already held by the location.
type Collision int

const (
	// CollisionKeepNew keeps only the new value; the old value of the key is dropped.
	CollisionKeepNew Collision = iota
	// CollisionCombine keeps both, old values first, as one sequence.
	CollisionCombine
)

func (c Collision) String() string {
	switch c {
	case CollisionKeepNew:
		return "keep-new"
	case CollisionCombine:
		return "combine"
	default:
		return fmt.Sprintf("Collision(%d)", int(c))
	}
}

// ParseCollision parses the names returned by Collision.String.
func ParseCollision(s string) (Collision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep-new", "keepnew":
		return CollisionKeepNew, nil
	case "combine":
		return CollisionCombine, nil
	default:
		return CollisionKeepNew, fmt.Errorf("unknown collision policy %q", s)
	}
}

// Merge combines the normalized fields local with the location's query old.
//
// local is returned as is when opts.SaveOld is false or old is empty.
// Otherwise the entries of local followed by the entries of old are folded
// into one map, in order:
//   - a key seen for the first time is set;
//   - a key already folded that is absent from old is combined into a sequence;
//   - a key already folded that also lives in old follows opts.Collision.
func Merge(local, old *FieldMap, opts Options) *FieldMap {
	if !opts.SaveOld || old.IsEmpty() {
		return local
	}
	acc := NewFieldMap()
	fold := func(key string, value Value) {
		prev, inAcc := acc.lookup(key)
		inOld := old.Has(key)
		switch {
		case inAcc && !inOld:
			acc.Set(key, combine(prev, value))
		case inAcc && inOld:
			// local keys are unique, so value comes from old here.
			if opts.Collision == CollisionCombine {
				acc.Set(key, combine(value, prev))
			}
		default:
			acc.Set(key, value)
		}
	}
	for k, v := range local.All() {
		fold(k, v)
	}
	for k, v := range old.All() {
		fold(k, v)
	}
	return acc
}

// combine joins first and second into one sequence. Equal scalars stay a scalar
// and Empty adds no members.
func combine(first, second Value) Value {
	if !first.IsSequence() && !second.IsSequence() && first.Equal(second) {
		return first
	}
	items := append(first.Strings(), second.Strings()...)
	if len(items) == 0 {
		return Empty()
	}
	return Sequence(items...)
}
