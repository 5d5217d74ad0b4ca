// Package tree implements deep access to JSON-like documents made of
// map[string]interface{}, []interface{} and leaf values.
package tree

import (
	"fmt"
	"sort"
)

// Walk visits every branch and leaf below root in depth-first pre-order.
// Map keys are visited in sorted order. The root itself is not visited.
func Walk(root interface{}, visit func(path string, value interface{})) {
	walk("", root, visit)
}

func walk(prefix string, node interface{}, visit func(string, interface{})) {
	switch node := node.(type) {
	case map[string]interface{}:
		for _, key := range sortedKeys(node) {
			path := AppendKey(prefix, key)
			visit(path, node[key])
			walk(path, node[key], visit)
		}
	case []interface{}:
		for idx, value := range node {
			path := AppendIndex(prefix, idx)
			visit(path, value)
			walk(path, value, visit)
		}
	}
}

// Get returns the value at segs, and whether it exists.
func Get(node interface{}, segs []string) (interface{}, bool) {
	for _, seg := range segs {
		switch n := node.(type) {
		case map[string]interface{}:
			value, ok := n[seg]
			if !ok {
				return nil, false
			}
			node = value
		case []interface{}:
			idx, ok := Index(seg)
			if !ok || idx >= len(n) {
				return nil, false
			}
			node = n[idx]
		default:
			return nil, false
		}
	}
	return node, true
}

// MaxGrow is the largest number of nil elements Set pads an array with to
// reach an index past its end.
const MaxGrow = 1 << 16

// Set writes value at segs and returns the resulting root, which differs from
// node when node had to be created or grown. Missing or scalar intermediates
// are replaced with a new slice when the following segment is an index and a
// new map otherwise. Existing maps are modified in place.
func Set(node interface{}, segs []string, value interface{}) (interface{}, error) {
	if len(segs) == 0 {
		return value, nil
	}

	seg := segs[0]

	switch n := node.(type) {
	case map[string]interface{}:
		child, err := Set(n[seg], segs[1:], value)
		if err != nil {
			return nil, err
		}
		n[seg] = child
		return n, nil
	case []interface{}:
		idx, ok := Index(seg)
		if !ok {
			return nil, fmt.Errorf("%w: key %q cannot address an array", ErrInvalidPath, seg)
		}
		if idx >= len(n) {
			if idx-len(n) >= MaxGrow {
				return nil, fmt.Errorf("%w: index %d is more than %d past the end of an array of length %d", ErrInvalidPath, idx, MaxGrow, len(n))
			}
			grown := make([]interface{}, idx+1)
			copy(grown, n)
			n = grown
		}
		child, err := Set(n[idx], segs[1:], value)
		if err != nil {
			return nil, err
		}
		n[idx] = child
		return n, nil
	default:
		if _, ok := Index(seg); ok {
			return Set([]interface{}{}, segs, value)
		}
		return Set(map[string]interface{}{}, segs, value)
	}
}

// Unset removes the value at segs. Slice elements are replaced with nil since
// the slice cannot be shortened without shifting its siblings. It reports
// whether anything was removed.
func Unset(node interface{}, segs []string) bool {
	if len(segs) == 0 {
		return false
	}

	parent, ok := Get(node, segs[:len(segs)-1])
	if !ok {
		return false
	}

	last := segs[len(segs)-1]

	switch p := parent.(type) {
	case map[string]interface{}:
		if _, ok := p[last]; !ok {
			return false
		}
		delete(p, last)
		return true
	case []interface{}:
		idx, ok := Index(last)
		if !ok || idx >= len(p) {
			return false
		}
		p[idx] = nil
		return true
	}

	return false
}

// Clone returns a deep copy of the maps and slices in node.
func Clone(node interface{}) interface{} {
	switch n := node.(type) {
	case map[string]interface{}:
		obj := make(map[string]interface{}, len(n))
		for k, v := range n {
			obj[k] = Clone(v)
		}
		return obj
	case []interface{}:
		arr := make([]interface{}, len(n))
		for i, v := range n {
			arr[i] = Clone(v)
		}
		return arr
	default:
		return node
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
