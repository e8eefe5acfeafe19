package dive

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePath parses a path expression into a key list. Segments are
// separated by dots and become plain keys; "[n]" becomes a forced
// sequence index. Backslash escapes a literal '.', '[', ']' or '\'
// inside a segment.
//
//	"users[0].name" -> K("users"), Index(0), K("name")
//	"a\.b.c"        -> K("a.b"), K("c")
//
// The empty expression denotes the root (zero keys).
func ParsePath(expr string) ([]Key, error) {
	if expr == "" {
		return nil, nil
	}

	var (
		keys    []Key
		seg     strings.Builder
		pending bool // segment accumulating, possibly empty via escape
		expect  bool // a '.' was consumed, a segment must follow
	)
	flush := func() {
		if pending {
			keys = append(keys, K(seg.String()))
			seg.Reset()
			pending = false
		}
	}

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch c {
		case '\\':
			if i+1 >= len(expr) {
				return nil, &KeyError{Code: CodePathSyntax, Position: len(keys), msg: "trailing escape"}
			}
			i++
			seg.WriteByte(expr[i])
			pending = true
			expect = false
		case '.':
			if !pending && (i == 0 || expr[i-1] != ']') {
				return nil, &KeyError{Code: CodePathSyntax, Position: len(keys), msg: "empty path segment"}
			}
			flush()
			expect = true
		case '[':
			flush()
			j := i + 1
			for j < len(expr) && expr[j] != ']' {
				j++
			}
			if j >= len(expr) {
				return nil, &KeyError{Code: CodePathSyntax, Position: len(keys), msg: "unterminated index"}
			}
			n, err := strconv.Atoi(expr[i+1 : j])
			if err != nil {
				return nil, &KeyError{
					Code:     CodePathSyntax,
					Position: len(keys),
					msg:      fmt.Sprintf("invalid index %q", expr[i+1:j]),
				}
			}
			keys = append(keys, Index(n))
			i = j
			expect = false
		case ']':
			return nil, &KeyError{Code: CodePathSyntax, Position: len(keys), msg: "unexpected ']'"}
		default:
			seg.WriteByte(c)
			pending = true
			expect = false
		}
	}
	if expect && !pending {
		return nil, &KeyError{Code: CodePathSyntax, Position: len(keys), msg: "trailing dot"}
	}
	flush()
	return keys, nil
}

// MustParsePath is ParsePath that panics on malformed expressions.
// Intended for path literals.
func MustParsePath(expr string) []Key {
	keys, err := ParsePath(expr)
	if err != nil {
		panic(err)
	}
	return keys
}

// compile parses expr through the Diver's LRU compile cache. Parsed
// key lists are immutable and safely shared between callers.
func (d *Diver) compile(expr string) ([]Key, error) {
	if keys, ok := d.paths.Get(expr); ok {
		if d.opts.CollectMetrics {
			d.metrics.RecordPathCacheHit()
		}
		return keys, nil
	}
	if d.opts.CollectMetrics {
		d.metrics.RecordPathCacheMiss()
	}
	keys, err := ParsePath(expr)
	if err != nil {
		d.recordKeyError()
		return nil, err
	}
	d.paths.Set(expr, keys)
	return keys, nil
}

// ExistsPath is Exists over a path expression.
func (d *Diver) ExistsPath(root any, expr string) (bool, error) {
	keys, err := d.compile(expr)
	if err != nil {
		return false, err
	}
	return d.Exists(root, keys...)
}

// GetPath is Get over a path expression.
func (d *Diver) GetPath(root any, expr string) (any, bool, error) {
	keys, err := d.compile(expr)
	if err != nil {
		return nil, false, err
	}
	return d.Get(root, keys...)
}

// SetPath is Set over a path expression.
func (d *Diver) SetPath(root any, value any, expr string) (any, error) {
	keys, err := d.compile(expr)
	if err != nil {
		return nil, err
	}
	return d.Set(root, value, keys...)
}

// ClearPath is Clear over a path expression.
func (d *Diver) ClearPath(root any, expr string) (any, bool, error) {
	keys, err := d.compile(expr)
	if err != nil {
		return nil, false, err
	}
	return d.Clear(root, keys...)
}

// AtPath is At over a path expression.
func (d *Diver) AtPath(root any, expr string) (*Ref, error) {
	keys, err := d.compile(expr)
	if err != nil {
		return nil, err
	}
	return d.At(root, keys...), nil
}

// ExistsPath is Exists over a path expression on the default Diver.
func ExistsPath(root any, expr string) (bool, error) {
	return defaultDiver.ExistsPath(root, expr)
}

// GetPath is Get over a path expression on the default Diver.
func GetPath(root any, expr string) (any, bool, error) {
	return defaultDiver.GetPath(root, expr)
}

// SetPath is Set over a path expression on the default Diver.
func SetPath(root any, value any, expr string) (any, error) {
	return defaultDiver.SetPath(root, value, expr)
}

// ClearPath is Clear over a path expression on the default Diver.
func ClearPath(root any, expr string) (any, bool, error) {
	return defaultDiver.ClearPath(root, expr)
}

// AtPath is At over a path expression on the default Diver.
func AtPath(root any, expr string) (*Ref, error) {
	return defaultDiver.AtPath(root, expr)
}
