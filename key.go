package dive

import (
	"fmt"
	"strconv"

	"go.uber.org/multierr"
)

// keyKind discriminates how a single path step is interpreted.
type keyKind int

const (
	keyPlain keyKind = iota
	keyMapKey
	keyIndex
	keyMethod
	keyProperty
)

// Key is one step of a traversal path. Plain keys are interpreted by
// the runtime kind of the container they are applied to; descriptor
// keys (MapKey, Index, Method, Property) force one interpretation
// regardless of container kind and determine what gets vivified when a
// write passes through an absent slot.
type Key struct {
	kind keyKind
	name string // map key, method or property name
	idx  int    // sequence index for keyIndex
	raw  any    // original plain value
	err  error  // construction error, surfaced before traversal begins
}

// K wraps v as a plain key. Strings and integers are the common cases;
// a Desc is normalized into its descriptor form, and an existing Key is
// passed through. Unsupported values yield a key error when the key is
// used.
func K(v any) Key {
	switch t := v.(type) {
	case Key:
		return t
	case Desc:
		return t.key()
	case *Desc:
		return t.key()
	case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Key{kind: keyPlain, raw: v}
	case fmt.Stringer:
		return Key{kind: keyPlain, raw: t.String()}
	default:
		return Key{err: &KeyError{
			Code: CodeUnsupportedKey,
			msg:  fmt.Sprintf("unsupported key value of type %T", v),
		}}
	}
}

// MapKey forces name to be interpreted as a keyed-map lookup. An absent
// slot written through this key vivifies to a map.
func MapKey(name string) Key {
	return Key{kind: keyMapKey, name: name}
}

// Index forces i to be interpreted as a sequence index. An absent slot
// written through this key vivifies to a sequence.
func Index(i int) Key {
	return Key{kind: keyIndex, idx: i}
}

// Method forces name to be invoked as an accessor on an Object. Absent
// slots can never be vivified into objects, so writing through a
// method key against an absent value is an invocation error.
func Method(name string) Key {
	return Key{kind: keyMethod, name: name}
}

// Property forces name to be read or assigned as a named property on a
// PropertyAccessor.
func Property(name string) Key {
	return Key{kind: keyProperty, name: name}
}

// Ks wraps each part with K. Parts may be bare scalars, Desc records,
// or Keys.
func Ks(parts ...any) []Key {
	keys := make([]Key, len(parts))
	for i, p := range parts {
		keys[i] = K(p)
	}
	return keys
}

// Desc is the record form of a descriptor key: exactly one field must
// be populated. Zero or multiple populated fields make the key a hard
// error, reported before any traversal starts.
type Desc struct {
	// MapKey forces keyed-map interpretation (field set when non-nil).
	MapKey any
	// Index forces sequence-index interpretation.
	Index *int
	// Method forces accessor invocation (field set when non-empty).
	Method string
	// Property forces assignable-property interpretation (field set
	// when non-empty).
	Property string
}

func (d *Desc) key() Key {
	if d == nil {
		return Key{err: &KeyError{Code: CodeBadDescriptor, msg: "nil descriptor"}}
	}
	var (
		set int
		out Key
	)
	if d.MapKey != nil {
		set++
		out = Key{kind: keyMapKey, name: stringifyKey(d.MapKey)}
	}
	if d.Index != nil {
		set++
		out = Key{kind: keyIndex, idx: *d.Index}
	}
	if d.Method != "" {
		set++
		out = Key{kind: keyMethod, name: d.Method}
	}
	if d.Property != "" {
		set++
		out = Key{kind: keyProperty, name: d.Property}
	}
	if set != 1 {
		return Key{err: &KeyError{
			Code: CodeBadDescriptor,
			msg:  fmt.Sprintf("descriptor must populate exactly one field, got %d", set),
		}}
	}
	return out
}

// Kind reports which interpretation the key forces: KindMap for forced
// map keys, KindSequence for forced indices, KindObject for method and
// property keys, and KindAbsent for plain keys (no forced kind).
func (k Key) Kind() Kind {
	switch k.kind {
	case keyMapKey:
		return KindMap
	case keyIndex:
		return KindSequence
	case keyMethod, keyProperty:
		return KindObject
	default:
		return KindAbsent
	}
}

// String renders the key for diagnostics.
func (k Key) String() string {
	switch k.kind {
	case keyMapKey:
		return strconv.Quote(k.name)
	case keyIndex:
		return "[" + strconv.Itoa(k.idx) + "]"
	case keyMethod:
		return k.name + "()"
	case keyProperty:
		return "." + k.name
	default:
		if k.err != nil {
			return "<invalid>"
		}
		return stringifyKey(k.raw)
	}
}

// mapName resolves the key as a map key.
func (k Key) mapName() string {
	if k.kind == keyMapKey {
		return k.name
	}
	return stringifyKey(k.raw)
}

// accessorName resolves the key as an accessor or property name.
func (k Key) accessorName() string {
	if k.kind == keyMethod || k.kind == keyProperty {
		return k.name
	}
	return stringifyKey(k.raw)
}

// seqIndex resolves the key as a sequence index. Plain keys qualify
// when they carry an integer or an all-digit string.
func (k Key) seqIndex() (int, bool) {
	if k.kind == keyIndex {
		return k.idx, true
	}
	switch t := k.raw.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// stringifyKey renders a plain key value as a map key string.
func stringifyKey(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// validateKeys checks every key in the path before traversal begins.
// All construction errors are aggregated so a caller sees the full set
// at once; a path with any bad key performs no traversal and no writes.
func validateKeys(keys []Key) error {
	var err error
	for i, k := range keys {
		if k.err == nil {
			continue
		}
		var ke *KeyError
		if asKeyError(k.err, &ke) {
			ke = &KeyError{Code: ke.Code, Position: i, msg: ke.msg}
			err = multierr.Append(err, ke)
			continue
		}
		err = multierr.Append(err, fmt.Errorf("key %d: %w", i, k.err))
	}
	return err
}
