// Package reshapemsgpack encodes and decodes documents using Msgpack.
package reshapemsgpack

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v4"
)

// Marshal encodes a document using Msgpack.
func Marshal(doc interface{}) ([]byte, error) {
	return msgpack.Marshal(doc)
}

// Unmarshal decodes a Msgpack document into the shape reshape works with:
// objects become map[string]interface{}, arrays []interface{}, signed and
// unsigned integers int64 (or uint64 when out of range) and floats float64.
func Unmarshal(data []byte) (interface{}, error) {
	var doc interface{}
	err := msgpack.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}
	return normalize(doc)
}

func normalize(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, elem := range v {
			n, err := normalize(elem)
			if err != nil {
				return nil, err
			}
			v[key] = n
		}
		return v, nil
	case map[interface{}]interface{}:
		obj := make(map[string]interface{}, len(v))
		for key, elem := range v {
			k, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported map key type: %T", key)
			}
			n, err := normalize(elem)
			if err != nil {
				return nil, err
			}
			obj[k] = n
		}
		return obj, nil
	case []interface{}:
		for i, elem := range v {
			n, err := normalize(elem)
			if err != nil {
				return nil, err
			}
			v[i] = n
		}
		return v, nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), nil
		}
		return v, nil
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), nil
		}
		return uint64(v), nil
	case float32:
		return float64(v), nil
	}
	return value, nil
}
