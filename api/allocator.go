// Package api
// Author: momentics
//
// Reusable byte buffer allocation for request processing.
//
// Buffers move between exactly two owners: the caller (between Allocate and
// Release) and the policy (everywhere else). Releasing a buffer transfers
// ownership back fully; a released buffer must not be retained.

package api

// Allocator is the pluggable buffer allocation policy.
type Allocator interface {
	// Allocate returns a buffer of at least sizeHint bytes.
	Allocate(sizeHint int) []byte

	// Release returns a buffer to the policy. The buffer must not be used
	// afterwards.
	Release(buf []byte)

	// Stats exposes allocation accounting for observability.
	Stats() AllocatorStats
}

// AllocatorStats aggregates buffer allocation/reuse counters.
type AllocatorStats struct {
	TotalAlloc int64 // buffers handed out
	TotalFree  int64 // buffers accepted back
	Reused     int64 // allocations satisfied from a free list
	InUse      int64 // currently outstanding
}
