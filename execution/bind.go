// File: execution/bind.go
// Package execution
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The goroutine-bound binding registry. Each goroutine owns a private stack
// of bindings; the active execution is the top of that stack. Bindings
// never leak across goroutines: handing work to another pool does NOT carry
// the binding along - the destination must re-bind explicitly (see Bind's
// doc). Re-entrant Bind on the same goroutine saves and restores the prior
// binding rather than failing.

package execution

import (
	"sync"

	"github.com/momentics/hioload-serve/api"
)

const shardCount = 64

type shard struct {
	mu sync.Mutex
	m  map[uint64][]api.Execution
}

// registry shards by goroutine id to keep Bind/Current cheap under many
// concurrent goroutines.
var registry [shardCount]shard

func init() {
	for i := range registry {
		registry[i].m = make(map[uint64][]api.Execution)
	}
}

func shardFor(gid uint64) *shard {
	return &registry[gid%shardCount]
}

// Bind makes e the active execution of the calling goroutine for the
// duration of fn, restoring the previous state on every exit path,
// including panics. This is the only way to establish a binding; there is
// deliberately no set-and-forget variant.
//
// The binding is goroutine-local. Submitting work to the background
// executor or a worker pool does not propagate it; the submitted operation
// observes no active execution unless it calls Bind itself.
func Bind(e api.Execution, fn func()) {
	gid := goroutineID()
	s := shardFor(gid)

	s.mu.Lock()
	s.m[gid] = append(s.m[gid], e)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		stack := s.m[gid]
		if n := len(stack); n > 1 {
			s.m[gid] = stack[:n-1]
		} else {
			delete(s.m, gid)
		}
		s.mu.Unlock()
	}()

	fn()
}

// Current returns the execution bound to the calling goroutine. ok is false
// when no binding is active; that is a valid outcome, not an error, and the
// result is never a stale binding from another goroutine.
func Current() (api.Execution, bool) {
	gid := goroutineID()
	s := shardFor(gid)

	s.mu.Lock()
	stack := s.m[gid]
	s.mu.Unlock()

	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// Provider is a stable handle that resolves the calling goroutine's active
// execution at lookup time. All Provider values behave identically - the
// type is stateless and equality is behavioral, not referential - so any
// number of components may hold "the" provider without coordination.
type Provider struct{}

// NewProvider returns a provider handle. Successive calls yield
// functionally identical values.
func NewProvider() Provider { return Provider{} }

// Get resolves the active execution for the calling goroutine.
func (Provider) Get() (api.Execution, bool) { return Current() }
