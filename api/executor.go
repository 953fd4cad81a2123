// Package api
// Author: momentics
//
// Executor contract for dedicated request-handling pools.

package api

import "context"

// Executor abstracts a bounded pool of request-handling workers.
type Executor interface {
	// Submit schedules task for execution. Behavior when the pool is
	// saturated is governed by the pool's backpressure policy: it either
	// blocks until capacity frees (honoring ctx) or fails fast with
	// ErrPoolExhausted.
	Submit(ctx context.Context, task func()) error

	// Workers returns the number of worker goroutines.
	Workers() int

	// Close shuts the pool down and waits for in-flight tasks.
	Close()
}
