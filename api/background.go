// File: api/background.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The "background" is where blocking operations go so that accept
// goroutines and dedicated workers never stall. Results come back through
// a Promise that completes exactly once.

package api

import "context"

// BackgroundFunc is a potentially blocking operation. The supplied context
// is canceled when the promise is canceled or the background shuts down.
type BackgroundFunc func(ctx context.Context) (any, error)

// Background executes blocking operations on a pool isolated from both the
// accept goroutines and the dedicated worker pool.
type Background interface {
	// Submit enqueues op and returns a promise for its outcome. Failures,
	// including panics inside op, are captured in the promise rather than
	// propagated to the worker. Submit never blocks on op itself.
	Submit(op BackgroundFunc) Promise

	// Close stops accepting work and waits for started operations.
	Close()
}

// Promise is the deferred outcome of a background operation.
//
// Value and Err are meaningful only after Done is closed.
type Promise interface {
	// Done is closed when the operation completed or was canceled.
	Done() <-chan struct{}

	// Value returns the operation's result.
	Value() any

	// Err returns the captured failure, or nil on success.
	Err() error

	// Wait blocks until completion or ctx expiry, returning the outcome.
	Wait(ctx context.Context) (any, error)

	// Cancel requests cancellation. Before the operation starts it prevents
	// execution entirely; afterwards it only cancels the operation's
	// context. Best effort either way.
	Cancel()
}
