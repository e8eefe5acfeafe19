package dive

import (
	"sync/atomic"
)

// Metrics tracks traversal counts using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	// Operation counts by mode
	existsOps atomic.Uint64
	getOps    atomic.Uint64
	setOps    atomic.Uint64
	clearOps  atomic.Uint64

	// Walk outcomes
	absents       atomic.Uint64
	vivifications atomic.Uint64
	growths       atomic.Uint64

	// Error counts by kind
	traversalErrors  atomic.Uint64
	invocationErrors atomic.Uint64
	keyErrors        atomic.Uint64

	// Path-expression compile cache
	pathCacheHits   atomic.Uint64
	pathCacheMisses atomic.Uint64

	// Longest path walked (CAS max)
	maxDepth atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// --- Recording Methods ---

// RecordExists records an existence check over a path of the given depth.
func (m *Metrics) RecordExists(depth int) {
	m.existsOps.Add(1)
	m.recordDepth(depth)
}

// RecordGet records a read over a path of the given depth.
func (m *Metrics) RecordGet(depth int) {
	m.getOps.Add(1)
	m.recordDepth(depth)
}

// RecordSet records a write over a path of the given depth.
func (m *Metrics) RecordSet(depth int) {
	m.setOps.Add(1)
	m.recordDepth(depth)
}

// RecordClear records a clear over a path of the given depth.
func (m *Metrics) RecordClear(depth int) {
	m.clearOps.Add(1)
	m.recordDepth(depth)
}

// RecordAbsent records a walk that ended in an absent result.
func (m *Metrics) RecordAbsent() {
	m.absents.Add(1)
}

// RecordVivification records an intermediate container created by a write.
func (m *Metrics) RecordVivification() {
	m.vivifications.Add(1)
}

// RecordGrowth records a sequence reallocation past its length.
func (m *Metrics) RecordGrowth() {
	m.growths.Add(1)
}

// RecordTraversalError records a traversal error.
func (m *Metrics) RecordTraversalError() {
	m.traversalErrors.Add(1)
}

// RecordInvocationError records an invocation error.
func (m *Metrics) RecordInvocationError() {
	m.invocationErrors.Add(1)
}

// RecordKeyError records a malformed key list.
func (m *Metrics) RecordKeyError() {
	m.keyErrors.Add(1)
}

// RecordPathCacheHit records a compile-cache hit.
func (m *Metrics) RecordPathCacheHit() {
	m.pathCacheHits.Add(1)
}

// RecordPathCacheMiss records a compile-cache miss.
func (m *Metrics) RecordPathCacheMiss() {
	m.pathCacheMisses.Add(1)
}

func (m *Metrics) recordDepth(depth int) {
	d := uint64(depth)
	for {
		old := m.maxDepth.Load()
		if d <= old {
			return
		}
		if m.maxDepth.CompareAndSwap(old, d) {
			return
		}
	}
}

// --- Query Methods ---

// Ops returns the total number of operations across all modes.
func (m *Metrics) Ops() uint64 {
	return m.existsOps.Load() + m.getOps.Load() + m.setOps.Load() + m.clearOps.Load()
}

// Absents returns the number of walks that ended absent.
func (m *Metrics) Absents() uint64 {
	return m.absents.Load()
}

// Vivifications returns the number of containers created by writes.
func (m *Metrics) Vivifications() uint64 {
	return m.vivifications.Load()
}

// Growths returns the number of sequence reallocations.
func (m *Metrics) Growths() uint64 {
	return m.growths.Load()
}

// MaxDepth returns the longest path walked.
func (m *Metrics) MaxDepth() int {
	return int(m.maxDepth.Load())
}

// PathCacheHitRate returns the compile-cache hit rate (0.0 to 1.0).
func (m *Metrics) PathCacheHitRate() float64 {
	hits := m.pathCacheHits.Load()
	misses := m.pathCacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Snapshot captures all counters at one point in time.
type Snapshot struct {
	ExistsOps uint64
	GetOps    uint64
	SetOps    uint64
	ClearOps  uint64

	Absents       uint64
	Vivifications uint64
	Growths       uint64

	TraversalErrors  uint64
	InvocationErrors uint64
	KeyErrors        uint64

	PathCacheHits   uint64
	PathCacheMisses uint64

	MaxDepth int
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		ExistsOps:        m.existsOps.Load(),
		GetOps:           m.getOps.Load(),
		SetOps:           m.setOps.Load(),
		ClearOps:         m.clearOps.Load(),
		Absents:          m.absents.Load(),
		Vivifications:    m.vivifications.Load(),
		Growths:          m.growths.Load(),
		TraversalErrors:  m.traversalErrors.Load(),
		InvocationErrors: m.invocationErrors.Load(),
		KeyErrors:        m.keyErrors.Load(),
		PathCacheHits:    m.pathCacheHits.Load(),
		PathCacheMisses:  m.pathCacheMisses.Load(),
		MaxDepth:         int(m.maxDepth.Load()),
	}
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	m.existsOps.Store(0)
	m.getOps.Store(0)
	m.setOps.Store(0)
	m.clearOps.Store(0)
	m.absents.Store(0)
	m.vivifications.Store(0)
	m.growths.Store(0)
	m.traversalErrors.Store(0)
	m.invocationErrors.Store(0)
	m.keyErrors.Store(0)
	m.pathCacheHits.Store(0)
	m.pathCacheMisses.Store(0)
	m.maxDepth.Store(0)
}
