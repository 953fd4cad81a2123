// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values shared across the library.

package api

import "errors"

var (
	// ErrPoolExhausted indicates a saturated pool under the reject
	// backpressure policy. Recoverable: callers may retry, back off or shed.
	ErrPoolExhausted = errors.New("pool exhausted")

	// ErrExecutorClosed indicates a submit after the worker pool shut down.
	ErrExecutorClosed = errors.New("executor is closed")

	// ErrBackgroundClosed indicates a submit after the background shut down.
	ErrBackgroundClosed = errors.New("background executor is closed")

	// ErrCanceled indicates a promise canceled before its operation ran.
	ErrCanceled = errors.New("operation canceled before start")

	// ErrBackgroundPanic wraps panics recovered from background operations.
	ErrBackgroundPanic = errors.New("background operation panicked")
)
