// Package pool provides a typed free list for datagram receive buffers.
package pool

import "sync"

// Buffers hands out fixed-size byte slices backed by a sync.Pool.
// It reduces allocation churn when many DNS exchanges reuse
// identically-sized receive buffers.
type Buffers struct {
	internal sync.Pool
	size     int
}

// NewBuffers creates a pool of buffers of the given size in bytes.
func NewBuffers(size int) *Buffers {
	return &Buffers{
		internal: sync.Pool{
			New: func() any {
				b := make([]byte, size)
				return &b
			},
		},
		size: size,
	}
}

// Size returns the length of the buffers this pool hands out.
func (p *Buffers) Size() int { return p.size }

// Get retrieves a buffer of exactly Size bytes.
func (p *Buffers) Get() []byte {
	return *p.internal.Get().(*[]byte)
}

// Put returns a buffer to the pool. Buffers of the wrong size are
// dropped so a resized or re-sliced buffer cannot poison the pool.
func (p *Buffers) Put(buf []byte) {
	if len(buf) != p.size {
		return
	}
	p.internal.Put(&buf)
}
