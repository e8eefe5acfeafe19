// Package pool provides sync.Pool wrappers for reducing allocations on
// the traversal hot path.
package pool

import (
	"strconv"
	"sync"
)

// PathBuilder renders traversal paths like "a.b[0].c" for diagnostics.
// It uses a byte buffer that grows as needed and is reused via
// sync.Pool.
type PathBuilder struct {
	buf []byte
}

var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{
			buf: make([]byte, 0, 128),
		}
	},
}

// AcquirePathBuilder gets a PathBuilder from the pool.
// Call Release() when done to return it to the pool.
func AcquirePathBuilder() *PathBuilder {
	pb := pathBuilderPool.Get().(*PathBuilder)
	pb.Reset()
	return pb
}

// Release returns the PathBuilder to the pool.
func (b *PathBuilder) Release() {
	if b == nil {
		return
	}
	// Don't return oversized buffers to the pool
	if cap(b.buf) <= 4096 {
		pathBuilderPool.Put(b)
	}
}

// Reset clears the buffer without deallocating.
func (b *PathBuilder) Reset() {
	b.buf = b.buf[:0]
}

// Len returns the current length of the rendered path.
func (b *PathBuilder) Len() int {
	return len(b.buf)
}

// WriteField appends a keyed segment: "name" at the start of the path,
// ".name" after it.
func (b *PathBuilder) WriteField(name string) {
	if len(b.buf) > 0 {
		b.buf = append(b.buf, '.')
	}
	b.buf = append(b.buf, name...)
}

// WriteIndex appends an index segment: "[i]".
func (b *PathBuilder) WriteIndex(i int) {
	b.buf = append(b.buf, '[')
	b.buf = strconv.AppendInt(b.buf, int64(i), 10)
	b.buf = append(b.buf, ']')
}

// WriteCall appends an accessor segment: "name()" at the start of the
// path, ".name()" after it.
func (b *PathBuilder) WriteCall(name string) {
	b.WriteField(name)
	b.buf = append(b.buf, '(', ')')
}

// String returns the rendered path. The returned string is a copy and
// stays valid after Release.
func (b *PathBuilder) String() string {
	return string(b.buf)
}
