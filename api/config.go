// File: api/config.go
// Package api defines the launch configuration contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Config is the read-only view of everything fixed at server launch:
// binding, threading, buffers, TLS material and free-form extension
// properties. Implementations must be immutable after construction so the
// value can be shared across every goroutine without synchronization.

package api

import (
	"crypto/tls"
	"net/url"
)

// Default values applied by the launch builder.
const (
	// DefaultPort is the port servers listen on when none is configured.
	DefaultPort = 5050

	// DefaultMaxContentLength bounds aggregated request payloads.
	DefaultMaxContentLength = 65536
)

// Config exposes the launch-time settings of a server.
//
// All accessors are pure: no side effects, no mutation, safe for concurrent
// use. Absent-capable fields (bind address, TLS) use comma-ok accessors
// instead of sentinel values.
type Config interface {
	// BaseDir returns the application base directory.
	BaseDir() string

	// HandlerFactory returns the factory invoked once at startup to obtain
	// the root handler for request dispatch. The factory is opaque to the
	// core: it may be arbitrarily expensive, but it runs exactly once.
	HandlerFactory() HandlerFactory

	// Port returns the listen port. Defaults to DefaultPort.
	Port() int

	// Address returns the interface address to bind to.
	// ok is false when no address was configured, meaning all interfaces.
	Address() (addr string, ok bool)

	// Reloadable reports whether the server runs in development
	// ("reloadable") mode. Components may respond to this as they see fit.
	Reloadable() bool

	// WorkerThreads returns the size of the dedicated request-handling pool.
	// Zero or negative means no dedicated pool: handlers run inline on the
	// goroutine that accepted the connection and must not block there.
	WorkerThreads() int

	// Allocator returns the buffer allocation policy for the application.
	Allocator() Allocator

	// PublicAddress returns the public URI of the server, used for
	// redirects. May be nil when not configured.
	PublicAddress() *url.URL

	// IndexFiles returns the names of files servable when a request maps to
	// a directory. The returned slice is a copy; mutating it has no effect.
	IndexFiles() []string

	// TLS returns the TLS configuration for serving encrypted traffic.
	// ok is false when none was configured, meaning plaintext only.
	TLS() (cfg *tls.Config, ok bool)

	// Other returns the extension property for key, or def when the key was
	// never configured. It never fails and never mutates.
	Other(key, def string) string

	// MaxContentLength returns the maximum aggregated request content
	// length. Defaults to DefaultMaxContentLength.
	MaxContentLength() int
}
