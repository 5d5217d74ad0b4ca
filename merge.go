package reshape

import (
	"fmt"

	"github.com/sanity-io/reshape/internal/hash"
)

// Append returns an OnSetFunc which appends value to the array at the
// destination, creating the array when the destination is empty.
func Append(value interface{}) OnSetFunc {
	return func(existing interface{}) (interface{}, error) {
		switch existing := existing.(type) {
		case nil:
			return []interface{}{value}, nil
		case []interface{}:
			return append(existing, value), nil
		default:
			return nil, fmt.Errorf("cannot append to %T", existing)
		}
	}
}

// AppendUnique is like Append but leaves the array unchanged when it already
// holds an element with the same content as value.
func AppendUnique(value interface{}) OnSetFunc {
	return func(existing interface{}) (interface{}, error) {
		arr, ok := existing.([]interface{})
		if !ok {
			return Append(value)(existing)
		}

		want, err := hash.Of(value)
		if err != nil {
			return nil, err
		}

		for _, elem := range arr {
			got, err := hash.Of(elem)
			if err != nil {
				return nil, err
			}
			if got == want {
				return arr, nil
			}
		}

		return append(arr, value), nil
	}
}

// Assign returns an OnSetFunc which sets key on the object at the
// destination, creating the object when the destination is empty.
func Assign(key string, value interface{}) OnSetFunc {
	return MergeFields(map[string]interface{}{key: value})
}

// MergeFields returns an OnSetFunc which copies every field of fields onto
// the object at the destination.
func MergeFields(fields map[string]interface{}) OnSetFunc {
	return func(existing interface{}) (interface{}, error) {
		var obj map[string]interface{}

		switch existing := existing.(type) {
		case nil:
			obj = make(map[string]interface{}, len(fields))
		case map[string]interface{}:
			obj = existing
		default:
			return nil, fmt.Errorf("cannot merge fields into %T", existing)
		}

		for k, v := range fields {
			obj[k] = v
		}

		return obj, nil
	}
}

// Count returns an OnSetFunc which increments the number at the destination,
// starting from zero.
func Count() OnSetFunc {
	return func(existing interface{}) (interface{}, error) {
		switch n := existing.(type) {
		case nil:
			return 1.0, nil
		case float64:
			return n + 1, nil
		case int:
			return n + 1, nil
		case int64:
			return n + 1, nil
		case uint64:
			return n + 1, nil
		default:
			return nil, fmt.Errorf("cannot count on %T", existing)
		}
	}
}
