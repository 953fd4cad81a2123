// File: execution/execution.go
// Package execution carries per-request state and makes the active
// execution discoverable from arbitrary call sites.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The preferred way to reach an execution is explicit: pass it down, or
// carry it in a context.Context via NewContext/FromContext. The ambient
// goroutine-bound lookup (Bind/Current) exists for the outermost dispatch
// boundary and for integration points that cannot thread parameters.

package execution

import (
	"context"
	"net"
	"sync"

	"github.com/momentics/hioload-serve/api"
)

// Execution is the state of one request being processed. It implements
// api.Execution. The key-value store is internally synchronized because a
// request's continuations may be re-bound onto other goroutines.
type Execution struct {
	ctx        context.Context
	conn       net.Conn
	cfg        api.Config
	background api.Background

	mu     sync.Mutex
	values map[string]any
}

var _ api.Execution = (*Execution)(nil)

// New creates an execution for one request.
func New(ctx context.Context, conn net.Conn, cfg api.Config, background api.Background) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	e := &Execution{
		conn:       conn,
		cfg:        cfg,
		background: background,
	}
	// The execution's own context carries it, so continuations handed the
	// context can recover the execution with FromContext.
	e.ctx = NewContext(ctx, e)
	return e
}

// Context returns the context governing this execution's lifetime.
func (e *Execution) Context() context.Context { return e.ctx }

// Conn returns the connection the request arrived on.
func (e *Execution) Conn() net.Conn { return e.conn }

// Config returns the owning server's launch configuration.
func (e *Execution) Config() api.Config { return e.cfg }

// Background returns the executor for offloading blocking operations.
func (e *Execution) Background() api.Background { return e.background }

// Set assigns a request-scoped value.
func (e *Execution) Set(key string, value any) {
	e.mu.Lock()
	if e.values == nil {
		e.values = make(map[string]any)
	}
	e.values[key] = value
	e.mu.Unlock()
}

// Get fetches a request-scoped value.
func (e *Execution) Get(key string) (any, bool) {
	e.mu.Lock()
	v, ok := e.values[key]
	e.mu.Unlock()
	return v, ok
}

// Delete removes a request-scoped value.
func (e *Execution) Delete(key string) {
	e.mu.Lock()
	delete(e.values, key)
	e.mu.Unlock()
}

// Keys returns all present request-scoped keys.
func (e *Execution) Keys() []string {
	e.mu.Lock()
	out := make([]string, 0, len(e.values))
	for k := range e.values {
		out = append(out, k)
	}
	e.mu.Unlock()
	return out
}
