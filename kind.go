package dive

// Kind classifies a runtime value for traversal dispatch.
// Classification is a closed set inspected once per step; descriptor
// keys can override the dispatch it implies, but never the kind itself.
type Kind int

const (
	// KindAbsent is an undefined slot: nil, or a key/index that was
	// never populated. Reads stop here; writes vivify here.
	KindAbsent Kind = iota
	// KindMap is a keyed container (map[string]any).
	KindMap
	// KindSequence is an indexed container ([]any).
	KindSequence
	// KindObject is a value exposing named accessors via the Object
	// interface.
	KindObject
	// KindScalar is any other defined value. It terminates traversal:
	// no key can descend into it.
	KindScalar
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindMap:
		return "map"
	case KindSequence:
		return "sequence"
	case KindObject:
		return "object"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// KindOf classifies v. Values implementing Object are objects even when
// their underlying type would otherwise classify differently; plain
// map[string]any and []any are the only native container types.
func KindOf(v any) Kind {
	if v == nil {
		return KindAbsent
	}
	if _, ok := v.(Object); ok {
		return KindObject
	}
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return KindAbsent
		}
		return KindMap
	case []any:
		if t == nil {
			return KindAbsent
		}
		return KindSequence
	}
	return KindScalar
}
