// File: pool/unpooled.go
// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"github.com/momentics/hioload-serve/api"
)

// Unpooled allocates a fresh buffer for every request and lets the GC
// reclaim released ones. Useful as a baseline and in memory-constrained
// deployments where retained free lists are unwanted.
type Unpooled struct {
	totalAlloc atomic.Int64
	totalFree  atomic.Int64
}

var _ api.Allocator = (*Unpooled)(nil)

// NewUnpooled creates an unpooled allocator.
func NewUnpooled() *Unpooled { return &Unpooled{} }

// Allocate returns a zeroed buffer of exactly sizeHint bytes.
func (u *Unpooled) Allocate(sizeHint int) []byte {
	if sizeHint < 0 {
		sizeHint = 0
	}
	u.totalAlloc.Add(1)
	return make([]byte, sizeHint)
}

// Release only updates accounting; the buffer goes to the GC.
func (u *Unpooled) Release(buf []byte) {
	u.totalFree.Add(1)
}

// Stats reports allocation accounting.
func (u *Unpooled) Stats() api.AllocatorStats {
	alloc := u.totalAlloc.Load()
	free := u.totalFree.Load()
	return api.AllocatorStats{
		TotalAlloc: alloc,
		TotalFree:  free,
		InUse:      alloc - free,
	}
}
