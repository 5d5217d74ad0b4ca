// Package hash computes structural content hashes of JSON-like values.
package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"sort"
)

type Hash [sha256.Size]byte

const (
	typeString byte = iota
	typeFloat
	typeMap
	typeSlice
	typeTrue
	typeFalse
	typeNull
)

type hasher struct {
	hasher hash.Hash
}

func hasherFor(t byte) hasher {
	h := hasher{
		hasher: sha256.New(),
	}
	h.hasher.Write([]byte{t})
	return h
}

func (h *hasher) sum() (result Hash) {
	_ = h.hasher.Sum(result[:0])
	return
}

func (h *hasher) writeField(key string, value Hash) {
	h.hasher.Write([]byte{typeString})
	h.hasher.Write([]byte(key))
	h.hasher.Write(value[:])
}

func (h *hasher) writeElement(value Hash) {
	h.hasher.Write(value[:])
}

func hashFor(t byte) Hash {
	h := hasherFor(t)
	return h.sum()
}

var (
	hashTrue  = hashFor(typeTrue)
	hashFalse = hashFor(typeFalse)
	hashNull  = hashFor(typeNull)
)

func hashString(s string) Hash {
	h := hasherFor(typeString)
	h.hasher.Write([]byte(s))
	return h.sum()
}

func hashFloat64(f float64) Hash {
	h := hasherFor(typeFloat)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
	h.hasher.Write(buf[:])
	return h.sum()
}

// Of returns the content hash of value. All numeric kinds hash as their
// float64 value, so decoders that pick different integer widths agree.
func Of(value interface{}) (Hash, error) {
	switch v := value.(type) {
	case nil:
		return hashNull, nil
	case bool:
		if v {
			return hashTrue, nil
		}
		return hashFalse, nil
	case string:
		return hashString(v), nil
	case map[string]interface{}:
		h := hasherFor(typeMap)
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fieldHash, err := Of(v[key])
			if err != nil {
				return Hash{}, err
			}
			h.writeField(key, fieldHash)
		}
		return h.sum(), nil
	case []interface{}:
		h := hasherFor(typeSlice)
		for _, elem := range v {
			elemHash, err := Of(elem)
			if err != nil {
				return Hash{}, err
			}
			h.writeElement(elemHash)
		}
		return h.sum(), nil
	}

	if f, ok := toFloat64(value); ok {
		return hashFloat64(f), nil
	}

	return Hash{}, fmt.Errorf("unsupported type: %T", value)
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
