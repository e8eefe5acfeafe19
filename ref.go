package dive

// Ref is a deferred reference to a path within a structure. It captures
// the root and the key list, not the value: every access re-resolves
// the path, so a Ref held across mutations observes the structure's
// state at access time, and a Ref into a not-yet-vivified region
// becomes valid once a write creates it.
type Ref struct {
	d    *Diver
	root any
	keys []Key
}

// Get reads through the reference. See Diver.Get.
func (r *Ref) Get() (any, bool, error) {
	return r.d.Get(r.root, r.keys...)
}

// Set writes through the reference, vivifying missing intermediates.
// See Diver.Set.
func (r *Ref) Set(value any) (any, error) {
	return r.d.Set(r.root, value, r.keys...)
}

// Exists checks the referenced slot. See Diver.Exists.
func (r *Ref) Exists() (bool, error) {
	return r.d.Exists(r.root, r.keys...)
}

// Clear removes the referenced slot. See Diver.Clear.
func (r *Ref) Clear() (any, bool, error) {
	return r.d.Clear(r.root, r.keys...)
}

// Keys returns a copy of the captured key list.
func (r *Ref) Keys() []Key {
	out := make([]Key, len(r.keys))
	copy(out, r.keys)
	return out
}
