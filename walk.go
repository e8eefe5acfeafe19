package dive

import (
	"errors"
	"fmt"

	"github.com/godive/dive/pool"
)

// mode selects the traversal behavior around the shared walk loop.
// Vivification-on-write, never-on-read is encoded here: modeSet is the
// only mode that creates missing containers.
type mode int

const (
	modeExists mode = iota
	modeGet
	modeSet
	modeClear
)

func (m mode) String() string {
	switch m {
	case modeExists:
		return "exists"
	case modeGet:
		return "get"
	case modeSet:
		return "set"
	case modeClear:
		return "clear"
	default:
		return "unknown"
	}
}

// storeFunc writes a value back into the slot the current value was
// read from. A nil storeFunc marks an unlinkable slot: a root passed by
// value, or a value produced by an accessor call.
type storeFunc func(v any) error

// errUnlinked is returned by sequence-slot stores whose growth would
// require an assignable parent slot that does not exist. It is rewritten
// into an InvocationError with the current path before surfacing.
var errUnlinked = errors.New("unlinked parent slot")

// walkState threads the walk's current position and write-back linkage
// through the step functions.
type walkState struct {
	cur    any
	store  storeFunc
	path   *pool.PathBuilder
	md     mode
	value  any // new value for modeSet
	atRoot bool
}

// walk is the single traversal routine behind every entry point.
// It returns the terminal result (for get and clear), whether the
// terminal slot was present (the answer for exists), and any error.
func (d *Diver) walk(root any, keys []Key, md mode, value any) (any, bool, error) {
	if err := validateKeys(keys); err != nil {
		d.recordKeyError()
		return nil, false, err
	}
	if max := d.opts.MaxDepth; max > 0 && len(keys) > max {
		err := &TraversalError{
			Code: CodeDepthExceeded,
			Kind: KindOf(root),
			msg:  fmt.Sprintf("path of %d keys exceeds the configured maximum depth %d", len(keys), max),
		}
		d.recordError(err)
		return nil, false, err
	}
	d.recordOp(md, len(keys))

	st := &walkState{md: md, value: value, path: pool.AcquirePathBuilder()}
	defer st.path.Release()

	st.cur = root
	if cell, ok := root.(*any); ok {
		st.cur = nil
		if cell != nil {
			st.cur = *cell
			st.store = func(v any) error {
				*cell = v
				return nil
			}
		}
	}

	if len(keys) == 0 {
		return d.walkRoot(st)
	}

	for i, k := range keys {
		st.atRoot = i == 0
		out, present, done, err := d.step(st, k, i == len(keys)-1)
		if err != nil {
			d.recordError(err)
			return nil, false, err
		}
		if done {
			if !present {
				d.recordAbsent()
			}
			return out, present, nil
		}
	}

	// Every terminal step reports done; the loop cannot fall through.
	return st.cur, true, nil
}

// walkRoot resolves a zero-key path: the root itself is the slot.
func (d *Diver) walkRoot(st *walkState) (any, bool, error) {
	switch st.md {
	case modeExists:
		return nil, true, nil
	case modeGet:
		return st.cur, true, nil
	case modeClear:
		if st.store == nil {
			err := d.invocation(st, CodeRootNotAssignable, "cannot clear: root is not an assignable cell", nil)
			d.recordError(err)
			return nil, false, err
		}
		prior := st.cur
		if err := st.store(nil); err != nil {
			return nil, false, err
		}
		return prior, prior != nil, nil
	default: // modeSet
		if st.store == nil {
			err := d.invocation(st, CodeRootNotAssignable, "cannot assign: root is not an assignable cell", nil)
			d.recordError(err)
			return nil, false, err
		}
		if err := st.store(st.value); err != nil {
			return nil, false, err
		}
		return st.value, true, nil
	}
}

// step applies one key. A descriptor's explicit kind always wins;
// plain keys dispatch on the runtime kind of the current value.
func (d *Diver) step(st *walkState, k Key, last bool) (out any, present, done bool, err error) {
	// Typed nil containers behave as absent slots, matching KindOf.
	if isTypedNil(st.cur) {
		st.cur = nil
	}

	switch k.kind {
	case keyMapKey:
		st.path.WriteField(k.name)
		return d.stepMap(st, k, last, true)
	case keyIndex:
		st.path.WriteIndex(k.idx)
		return d.stepIndex(st, k, last)
	case keyMethod:
		st.path.WriteCall(k.name)
		return d.stepMethod(st, k, last)
	case keyProperty:
		st.path.WriteField(k.name)
		return d.stepProperty(st, k, last)
	}

	switch KindOf(st.cur) {
	case KindMap, KindAbsent:
		st.path.WriteField(k.mapName())
		return d.stepMap(st, k, last, false)
	case KindSequence:
		idx, ok := k.seqIndex()
		if !ok {
			st.path.WriteField(k.mapName())
			return nil, false, false, d.traversal(st, CodeKeyKindMismatch,
				fmt.Sprintf("key %s is not a sequence index", k))
		}
		st.path.WriteIndex(idx)
		return d.stepIndex(st, k, last)
	case KindObject:
		st.path.WriteCall(k.accessorName())
		return d.stepMethod(st, k, last)
	default: // KindScalar
		st.path.WriteField(k.mapName())
		return nil, false, false, d.traversal(st, CodeScalarMidPath,
			"cannot traverse further: value at this point is a terminal scalar")
	}
}

// stepMap handles keyed-map access. forced marks a MapKey descriptor,
// which additionally reaches objects exposing map-style fields.
func (d *Diver) stepMap(st *walkState, k Key, last, forced bool) (any, bool, bool, error) {
	name := k.mapName()

	switch cur := st.cur.(type) {
	case nil:
		if st.md != modeSet {
			return nil, false, true, nil
		}
		m := map[string]any{}
		if err := d.link(st, m); err != nil {
			return nil, false, false, err
		}
		st.cur = m
		return d.resolveMap(st, m, name, last)
	case map[string]any:
		return d.resolveMap(st, cur, name, last)
	}

	if forced {
		if f, ok := st.cur.(FieldAccessor); ok {
			return d.resolveField(st, f, name, last)
		}
		if _, ok := st.cur.(Object); ok {
			return nil, false, false, d.invocation(st, CodeNoFieldAccess,
				fmt.Sprintf("object of type %T does not expose map-style fields", st.cur), nil)
		}
		if KindOf(st.cur) == KindSequence {
			return nil, false, false, d.traversal(st, CodeKeyKindMismatch,
				"forced map key against a sequence")
		}
	}
	return nil, false, false, d.traversal(st, CodeScalarMidPath,
		"cannot traverse further: value at this point is a terminal scalar")
}

func (d *Diver) resolveMap(st *walkState, m map[string]any, name string, last bool) (any, bool, bool, error) {
	if last {
		switch st.md {
		case modeExists:
			_, ok := m[name]
			return nil, ok, true, nil
		case modeGet:
			v, ok := m[name]
			return v, ok, true, nil
		case modeClear:
			prior, ok := m[name]
			if ok {
				delete(m, name)
			}
			return prior, ok, true, nil
		default: // modeSet
			m[name] = st.value
			return st.value, true, true, nil
		}
	}

	// A missing key flows on as an absent current value; the next step
	// reports absence or vivifies depending on mode.
	st.cur = m[name]
	st.store = func(v any) error {
		m[name] = v
		return nil
	}
	return nil, false, false, nil
}

func (d *Diver) resolveField(st *walkState, f FieldAccessor, name string, last bool) (any, bool, bool, error) {
	if last {
		switch st.md {
		case modeExists:
			_, ok := f.Field(name)
			return nil, ok, true, nil
		case modeGet:
			v, ok := f.Field(name)
			return v, ok, true, nil
		case modeClear:
			return nil, false, false, d.invocation(st, CodeNotClearable,
				"object fields cannot be cleared", nil)
		default: // modeSet
			f.SetField(name, st.value)
			return st.value, true, true, nil
		}
	}

	child, _ := f.Field(name)
	st.cur = child
	st.store = func(v any) error {
		f.SetField(name, v)
		return nil
	}
	return nil, false, false, nil
}

// stepIndex handles sequence access, plain or forced.
func (d *Diver) stepIndex(st *walkState, k Key, last bool) (any, bool, bool, error) {
	idx, ok := k.seqIndex()
	if !ok {
		return nil, false, false, d.traversal(st, CodeKeyKindMismatch,
			fmt.Sprintf("key %s is not a sequence index", k))
	}
	if idx < 0 {
		return nil, false, false, d.traversal(st, CodeNegativeIndex,
			fmt.Sprintf("sequence index %d is negative", idx))
	}

	switch cur := st.cur.(type) {
	case nil:
		if st.md != modeSet {
			return nil, false, true, nil
		}
		s := []any{}
		if err := d.link(st, s); err != nil {
			return nil, false, false, err
		}
		st.cur = s
		return d.resolveSeq(st, s, idx, last)
	case []any:
		return d.resolveSeq(st, cur, idx, last)
	}

	if KindOf(st.cur) == KindScalar {
		return nil, false, false, d.traversal(st, CodeScalarMidPath,
			"cannot traverse further: value at this point is a terminal scalar")
	}
	return nil, false, false, d.traversal(st, CodeKeyKindMismatch,
		fmt.Sprintf("forced sequence index against a %s", KindOf(st.cur)))
}

func (d *Diver) resolveSeq(st *walkState, s []any, idx int, last bool) (any, bool, bool, error) {
	if last {
		switch st.md {
		case modeExists:
			return nil, idx < len(s), true, nil
		case modeGet:
			if idx < len(s) {
				return s[idx], true, true, nil
			}
			return nil, false, true, nil
		case modeClear:
			if idx >= len(s) {
				return nil, false, true, nil
			}
			prior := s[idx]
			s[idx] = nil
			return prior, true, true, nil
		default: // modeSet
			if idx < len(s) {
				s[idx] = st.value
				return st.value, true, true, nil
			}
			grown := growSeq(s, idx)
			grown[idx] = st.value
			if err := d.storeThrough(st, grown); err != nil {
				return nil, false, false, err
			}
			d.recordGrowth()
			return st.value, true, true, nil
		}
	}

	var child any
	if idx < len(s) {
		child = s[idx]
	}
	parent := st.store
	st.cur = child
	st.store = func(v any) error {
		if idx < len(s) {
			s[idx] = v
			return nil
		}
		if parent == nil {
			return errUnlinked
		}
		grown := growSeq(s, idx)
		grown[idx] = v
		d.recordGrowth()
		return parent(grown)
	}
	return nil, false, false, nil
}

// stepMethod handles accessor invocation, plain (object dispatch) or
// forced. Accessor results are not addressable slots: traversal may
// continue through them, but vivification past them fails.
func (d *Diver) stepMethod(st *walkState, k Key, last bool) (any, bool, bool, error) {
	name := k.accessorName()

	obj, ok := st.cur.(Object)
	if !ok {
		if st.cur == nil && (st.md == modeExists || st.md == modeGet || st.md == modeClear) {
			return nil, false, true, nil
		}
		return nil, false, false, d.invocation(st, CodeNotAnObject,
			"cannot invoke accessor: target is not an addressable object", nil)
	}

	if last {
		switch st.md {
		case modeExists:
			return nil, obj.HasAccessor(name), true, nil
		case modeGet:
			if !obj.HasAccessor(name) {
				return nil, false, true, nil
			}
			v, err := obj.CallAccessor(name)
			if err != nil {
				return nil, false, false, d.invocation(st, CodeAccessorFailed,
					fmt.Sprintf("accessor %q failed", name), err)
			}
			return v, true, true, nil
		case modeClear:
			return nil, false, false, d.invocation(st, CodeNotClearable,
				"accessor results cannot be cleared", nil)
		default: // modeSet
			if !obj.HasAccessor(name) {
				return nil, false, false, d.invocation(st, CodeNoAccessor,
					fmt.Sprintf("object exposes no accessor %q", name), nil)
			}
			if _, err := obj.CallAccessor(name, st.value); err != nil {
				return nil, false, false, d.invocation(st, CodeAccessorFailed,
					fmt.Sprintf("accessor %q failed", name), err)
			}
			return st.value, true, true, nil
		}
	}

	if !obj.HasAccessor(name) {
		if st.md == modeSet {
			return nil, false, false, d.invocation(st, CodeNoAccessor,
				fmt.Sprintf("object exposes no accessor %q", name), nil)
		}
		return nil, false, true, nil
	}
	v, err := obj.CallAccessor(name)
	if err != nil {
		return nil, false, false, d.invocation(st, CodeAccessorFailed,
			fmt.Sprintf("accessor %q failed", name), err)
	}
	st.cur = v
	st.store = nil
	return nil, false, false, nil
}

// stepProperty handles assignable-property access. Property slots are
// addressable, so writes can vivify containers through them.
func (d *Diver) stepProperty(st *walkState, k Key, last bool) (any, bool, bool, error) {
	name := k.name

	p, ok := st.cur.(PropertyAccessor)
	if !ok {
		if st.cur == nil && (st.md == modeExists || st.md == modeGet || st.md == modeClear) {
			return nil, false, true, nil
		}
		return nil, false, false, d.invocation(st, CodeNotAnObject,
			"cannot access property: target is not an addressable object", nil)
	}

	if last {
		switch st.md {
		case modeExists:
			_, ok := p.Property(name)
			return nil, ok, true, nil
		case modeGet:
			v, ok := p.Property(name)
			return v, ok, true, nil
		case modeClear:
			return nil, false, false, d.invocation(st, CodeNotClearable,
				"properties cannot be cleared", nil)
		default: // modeSet
			if err := p.SetProperty(name, st.value); err != nil {
				return nil, false, false, d.invocation(st, CodeAccessorFailed,
					fmt.Sprintf("property %q assignment failed", name), err)
			}
			return st.value, true, true, nil
		}
	}

	child, _ := p.Property(name)
	st.cur = child
	st.store = func(v any) error {
		return p.SetProperty(name, v)
	}
	return nil, false, false, nil
}

// link stores a freshly vivified container into its parent slot before
// traversal proceeds, so partial paths are never silently lost.
func (d *Diver) link(st *walkState, container any) error {
	if err := d.storeThrough(st, container); err != nil {
		return err
	}
	d.recordVivification()
	if l := d.opts.Logger; l != nil {
		l.Debug("%s: vivified %s at %q", st.md, KindOf(container), st.path.String())
	}
	return nil
}

func (d *Diver) storeThrough(st *walkState, v any) error {
	if st.store == nil {
		return d.unlinked(st)
	}
	if err := st.store(v); err != nil {
		if errors.Is(err, errUnlinked) {
			return d.unlinked(st)
		}
		return err
	}
	return nil
}

func (d *Diver) unlinked(st *walkState) error {
	if st.atRoot {
		return d.invocation(st, CodeRootNotAssignable,
			"cannot write: root is not an assignable cell", nil)
	}
	return d.invocation(st, CodeUnlinkedParent,
		"cannot write: parent slot is not assignable", nil)
}

func (d *Diver) traversal(st *walkState, code ErrorCode, msg string) error {
	if l := d.opts.Logger; l != nil {
		l.Debug("%s: traversal error at %q: %s", st.md, st.path.String(), msg)
	}
	return &TraversalError{Code: code, Path: st.path.String(), Kind: KindOf(st.cur), msg: msg}
}

func (d *Diver) invocation(st *walkState, code ErrorCode, msg string, cause error) error {
	if l := d.opts.Logger; l != nil {
		l.Debug("%s: invocation error at %q: %s", st.md, st.path.String(), msg)
	}
	return &InvocationError{Code: code, Path: st.path.String(), msg: msg, err: cause}
}

func isTypedNil(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		return t == nil
	case []any:
		return t == nil
	}
	return false
}

func growSeq(s []any, idx int) []any {
	grown := make([]any, idx+1)
	copy(grown, s)
	return grown
}
