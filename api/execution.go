// File: api/execution.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Execution is the unit of request processing. One Execution exists per
// request regardless of which goroutine carries it; the execution package
// provides the goroutine-bound registry that makes the active Execution
// discoverable without explicit parameter passing.

package api

import (
	"context"
	"net"
)

// Execution is the ambient state of one request being processed.
type Execution interface {
	// Context returns the context governing this execution's lifetime.
	Context() context.Context

	// Conn returns the network connection the request arrived on.
	Conn() net.Conn

	// Config returns the launch configuration of the owning server.
	Config() Config

	// Background returns the executor for offloading blocking operations.
	Background() Background

	// Set assigns a request-scoped value for a key.
	Set(key string, value any)

	// Get fetches a request-scoped value, returning (value, exists).
	Get(key string) (any, bool)

	// Delete removes a request-scoped value.
	Delete(key string)

	// Keys returns all present request-scoped keys.
	Keys() []string
}
