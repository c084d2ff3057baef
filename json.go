package urlq

import (
	"errors"
	"fmt"

	"github.com/samber/mo"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON  = errors.New("invalid JSON")
	ErrNotObject    = errors.New("query must be a JSON object")
	ErrNestedObject = errors.New("nested objects are not supported")
)

// ParseJSON reads a flat JSON object into an Input, keeping the keys in
// document order. Arrays may nest to any depth; objects may not.
func ParseJSON(json string) mo.Result[Input] {
	if !gjson.Valid(json) {
		return mo.Err[Input](ErrInvalidJSON)
	}
	root := gjson.Parse(json)
	if root.Type == gjson.Null {
		return mo.Ok[Input](nil)
	}
	if !root.IsObject() {
		return mo.Err[Input](ErrNotObject)
	}
	var in Input
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		v, e := jsonValue(value)
		if e != nil {
			err = fmt.Errorf("field '%s': %w", key.String(), e)
			return false
		}
		in = append(in, Field{Key: key.String(), Value: v})
		return true
	})
	if err != nil {
		return mo.Err[Input](err)
	}
	return mo.Ok(in)
}

func jsonValue(res gjson.Result) (any, error) {
	switch {
	case res.IsObject():
		return nil, ErrNestedObject
	case res.IsArray():
		items := res.Array()
		values := make([]any, 0, len(items))
		for _, item := range items {
			v, err := jsonValue(item)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}
	switch res.Type {
	case gjson.String:
		return res.String(), nil
	case gjson.Number:
		return res.Float(), nil
	case gjson.True, gjson.False:
		return res.Bool(), nil
	default:
		return nil, nil
	}
}
