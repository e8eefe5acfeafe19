package dive

import (
	"github.com/godive/dive/cache"
)

// Diver evaluates traversal operations with a fixed configuration.
// A Diver holds no per-call state: the same Diver may be shared across
// goroutines as long as the structures it walks are not mutated
// concurrently.
type Diver struct {
	opts    *Options
	metrics *Metrics
	paths   *cache.Cache[string, []Key]
}

// New creates a Diver with the given options.
func New(opts ...Option) *Diver {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Diver{
		opts:    o,
		metrics: NewMetrics(),
		paths:   cache.New[string, []Key](o.PathCacheSize),
	}
}

var defaultDiver = New()

// Default returns the Diver behind the package-level functions.
func Default() *Diver {
	return defaultDiver
}

// Metrics returns the Diver's counters.
func (d *Diver) Metrics() *Metrics {
	return d.metrics
}

// Exists reports whether the path denotes a populated slot. Map and
// sequence existence is key/slot presence, so a slot holding nil still
// exists; object existence means the accessor is exposed. A path
// through an absent link is false, never an error; a path into a
// defined scalar is a traversal error. Zero keys is true for any root.
func (d *Diver) Exists(root any, keys ...Key) (bool, error) {
	_, present, err := d.walk(root, keys, modeExists, nil)
	return present, err
}

// Get returns the value at the path. present is false when any link in
// the path is missing; no container is ever created. Zero keys returns
// the root itself.
func (d *Diver) Get(root any, keys ...Key) (value any, present bool, err error) {
	return d.walk(root, keys, modeGet, nil)
}

// Set writes value at the path, creating missing intermediate
// containers: maps for plain and forced-map keys, sequences for forced
// indices. The returned value echoes the input for composability.
// Writes that must replace the root (zero keys, absent root, growth of
// a root sequence) require the root to be passed as *any.
func (d *Diver) Set(root any, value any, keys ...Key) (any, error) {
	out, _, err := d.walk(root, keys, modeSet, value)
	return out, err
}

// Clear removes the slot at the path and returns its prior value: map
// keys are deleted, sequence slots are reset to nil so sibling indices
// keep their positions. A path through an absent link is a no-op.
// Clear never vivifies.
func (d *Diver) Clear(root any, keys ...Key) (prior any, existed bool, err error) {
	return d.walk(root, keys, modeClear, nil)
}

// At returns a deferred reference to the path. The path is re-resolved
// on every access, so the reference observes the structure's state at
// access time.
func (d *Diver) At(root any, keys ...Key) *Ref {
	return &Ref{d: d, root: root, keys: keys}
}

// --- Package-level entry points (default Diver) ---

// Exists reports whether the path denotes a populated slot.
// See Diver.Exists.
func Exists(root any, keys ...Key) (bool, error) {
	return defaultDiver.Exists(root, keys...)
}

// Get returns the value at the path. See Diver.Get.
func Get(root any, keys ...Key) (any, bool, error) {
	return defaultDiver.Get(root, keys...)
}

// Set writes value at the path, vivifying missing intermediates.
// See Diver.Set.
func Set(root any, value any, keys ...Key) (any, error) {
	return defaultDiver.Set(root, value, keys...)
}

// Clear removes the slot at the path. See Diver.Clear.
func Clear(root any, keys ...Key) (any, bool, error) {
	return defaultDiver.Clear(root, keys...)
}

// At returns a deferred reference to the path. See Diver.At.
func At(root any, keys ...Key) *Ref {
	return defaultDiver.At(root, keys...)
}

// --- Metrics recording ---

func (d *Diver) recordOp(md mode, depth int) {
	if !d.opts.CollectMetrics {
		return
	}
	switch md {
	case modeExists:
		d.metrics.RecordExists(depth)
	case modeGet:
		d.metrics.RecordGet(depth)
	case modeSet:
		d.metrics.RecordSet(depth)
	case modeClear:
		d.metrics.RecordClear(depth)
	}
}

func (d *Diver) recordAbsent() {
	if d.opts.CollectMetrics {
		d.metrics.RecordAbsent()
	}
}

func (d *Diver) recordVivification() {
	if d.opts.CollectMetrics {
		d.metrics.RecordVivification()
	}
}

func (d *Diver) recordGrowth() {
	if d.opts.CollectMetrics {
		d.metrics.RecordGrowth()
	}
}

func (d *Diver) recordKeyError() {
	if d.opts.CollectMetrics {
		d.metrics.RecordKeyError()
	}
}

func (d *Diver) recordError(err error) {
	if !d.opts.CollectMetrics {
		return
	}
	switch {
	case IsTraversal(err):
		d.metrics.RecordTraversalError()
	case IsInvocation(err):
		d.metrics.RecordInvocationError()
	case IsKeyError(err):
		d.metrics.RecordKeyError()
	}
}
