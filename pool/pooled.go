// File: pool/pooled.go
// Package pool implements the buffer allocation policies: pooled reuse via
// per-size-class free lists, and plain unpooled allocation.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ownership rule: Release transfers the buffer fully back to the pool. A
// caller that releases a buffer while something else still references it
// corrupts its own data, not the pool's.

package pool

import (
	"math/bits"
	"sync/atomic"

	"github.com/momentics/hioload-serve/api"
	"github.com/momentics/hioload-serve/concurrency"
)

const (
	// minClassBits..maxClassBits bound the pooled size classes:
	// 64 B up to 1 MiB, powers of two. Requests above the top class are
	// served fresh and never pooled.
	minClassBits = 6
	maxClassBits = 20

	// defaultClassCapacity is how many free buffers each class retains.
	defaultClassCapacity = 1024
)

// Pooled reuses released buffers keyed by power-of-two size class.
type Pooled struct {
	classes    [maxClassBits - minClassBits + 1]*concurrency.LockFreeQueue[[]byte]
	totalAlloc atomic.Int64
	totalFree  atomic.Int64
	reused     atomic.Int64
}

var _ api.Allocator = (*Pooled)(nil)

// NewPooled creates a pooled allocator with the default per-class capacity.
func NewPooled() *Pooled {
	return NewPooledCapacity(defaultClassCapacity)
}

// NewPooledCapacity creates a pooled allocator retaining up to perClass
// free buffers in every size class.
func NewPooledCapacity(perClass int) *Pooled {
	if perClass < 2 {
		perClass = 2
	}
	p := &Pooled{}
	for i := range p.classes {
		p.classes[i] = concurrency.NewLockFreeQueue[[]byte](perClass)
	}
	return p
}

// classIndex maps a size hint to its class, or -1 when unpoolable.
func classIndex(size int) int {
	if size <= 0 {
		size = 1
	}
	bitsNeeded := bits.Len(uint(size - 1)) // ceil(log2), with Len(0) == 0 for size 1
	if bitsNeeded < minClassBits {
		bitsNeeded = minClassBits
	}
	if bitsNeeded > maxClassBits {
		return -1
	}
	return bitsNeeded - minClassBits
}

// Allocate returns a buffer of at least sizeHint bytes. Reused buffers keep
// whatever bytes previous owners wrote; callers must not assume zeroing.
func (p *Pooled) Allocate(sizeHint int) []byte {
	p.totalAlloc.Add(1)
	idx := classIndex(sizeHint)
	if idx < 0 {
		return make([]byte, sizeHint)
	}
	if buf, ok := p.classes[idx].Dequeue(); ok {
		p.reused.Add(1)
		return buf[:cap(buf)]
	}
	return make([]byte, 1<<(idx+minClassBits))
}

// Release returns buf to its size class. Buffers whose capacity does not
// match a class exactly, and overflow beyond class capacity, are dropped
// for the GC to take.
func (p *Pooled) Release(buf []byte) {
	p.totalFree.Add(1)
	c := cap(buf)
	if c == 0 || c&(c-1) != 0 {
		return
	}
	idx := classIndex(c)
	if idx < 0 || 1<<(idx+minClassBits) != c {
		return
	}
	p.classes[idx].Enqueue(buf[:c])
}

// Stats reports allocation accounting.
func (p *Pooled) Stats() api.AllocatorStats {
	alloc := p.totalAlloc.Load()
	free := p.totalFree.Load()
	return api.AllocatorStats{
		TotalAlloc: alloc,
		TotalFree:  free,
		Reused:     p.reused.Load(),
		InUse:      alloc - free,
	}
}
