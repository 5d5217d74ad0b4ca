package tree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned for paths that cannot be parsed or written.
var ErrInvalidPath = errors.New("invalid path")

// Parse splits a path into its segments. Both the dotted form ("a.b.0") and
// the bracket form ("a[0]", `a["x.y"]`) are accepted.
func Parse(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var segs []string
	i := 0
	// expectKey is true at the start and after a dot.
	expectKey := true

	for i < len(path) {
		switch c := path[i]; {
		case c == '.':
			if expectKey {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
			}
			expectKey = true
			i++
		case c == '[':
			seg, n, err := parseBracket(path[i:])
			if err != nil {
				return nil, fmt.Errorf("%w: %s in %q", ErrInvalidPath, err, path)
			}
			segs = append(segs, seg)
			expectKey = false
			i += n
		default:
			if !expectKey {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrInvalidPath, c, i, path)
			}
			end := i
			for end < len(path) && path[end] != '.' && path[end] != '[' {
				end++
			}
			segs = append(segs, path[i:end])
			expectKey = false
			i = end
		}
	}

	if expectKey {
		return nil, fmt.Errorf("%w: trailing dot in %q", ErrInvalidPath, path)
	}

	return segs, nil
}

// parseBracket reads one bracket segment at the start of s and returns it
// together with the number of bytes consumed.
func parseBracket(s string) (string, int, error) {
	if len(s) > 1 && s[1] == '"' {
		end := 2
		for end < len(s) && s[end] != '"' {
			if s[end] == '\\' {
				end++
			}
			end++
		}
		if end >= len(s) || end+1 >= len(s) || s[end+1] != ']' {
			return "", 0, errors.New("unterminated quoted key")
		}
		key, err := strconv.Unquote(s[1 : end+1])
		if err != nil {
			return "", 0, err
		}
		return key, end + 2, nil
	}

	end := strings.IndexByte(s, ']')
	if end < 0 {
		return "", 0, errors.New("unterminated bracket")
	}
	inner := s[1:end]
	if _, ok := Index(inner); !ok {
		return "", 0, fmt.Errorf("bracket index %q is not a non-negative integer", inner)
	}
	return inner, end + 1, nil
}

// Index reports whether seg addresses a slice element.
func Index(seg string) (int, bool) {
	if seg == "" || (len(seg) > 1 && seg[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// AppendKey appends a map key to a formatted path.
func AppendKey(prefix, key string) string {
	if key == "" || strings.ContainsAny(key, `.[]"`) {
		return prefix + "[" + strconv.Quote(key) + "]"
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// AppendIndex appends a slice index to a formatted path.
func AppendIndex(prefix string, idx int) string {
	if prefix == "" {
		return strconv.Itoa(idx)
	}
	return prefix + "." + strconv.Itoa(idx)
}
