// Package pkg holds small shared utilities: a pooled byte-buffer allocator
// and a quantile collector used by the benchmark harness.
package pkg

import (
	"sync"
	"sync/atomic"
)

// BufferPool hands out reusable byte buffers to keep transient encode
// scratch space off the heap.
type BufferPool struct {
	pool      *sync.Pool
	miss, hit atomic.Uint64
}

// NewBufferPool creates a new buffer pool instance.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: &sync.Pool{
			New: func() any { return new([]byte) },
		},
	}
}

// Get returns a buffer with length of want. Contents are unspecified.
func (p *BufferPool) Get(want int) []byte {
	buf := p.pool.Get().(*[]byte)

	if cap(*buf) < want {
		*buf = make([]byte, want)
		p.miss.Add(1)

	} else {
		*buf = (*buf)[:want]
		p.hit.Add(1)
	}

	return *buf
}

// Put adds the given buffer back to the pool.
func (p *BufferPool) Put(b []byte) {
	p.pool.Put(&b)
}

// Stats reports pool hits and misses since creation.
func (p *BufferPool) Stats() (hit, miss uint64) {
	return p.hit.Load(), p.miss.Load()
}
