// File: concurrency/promise.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// promise is the single-completion deferred result behind
// Background.Submit. State advances pending -> running -> done, or jumps
// pending -> done when canceled before start.

package concurrency

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-serve/api"
)

const (
	promisePending int32 = iota
	promiseRunning
	promiseDone
)

type promise struct {
	state  atomic.Int32
	done   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	value  any
	err    error
	ctx    context.Context
	cancel context.CancelFunc
}

var _ api.Promise = (*promise)(nil)

func newPromise() *promise {
	ctx, cancel := context.WithCancel(context.Background())
	return &promise{
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// begin transitions to running; false means the operation must not run.
func (p *promise) begin() bool {
	return p.state.CompareAndSwap(promisePending, promiseRunning)
}

// complete resolves the promise exactly once.
func (p *promise) complete(value any, err error) {
	p.once.Do(func() {
		p.mu.Lock()
		p.value = value
		p.err = err
		p.mu.Unlock()
		p.state.Store(promiseDone)
		close(p.done)
	})
}

func (p *promise) Done() <-chan struct{} { return p.done }

func (p *promise) Value() any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *promise) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *promise) Wait(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.Value(), p.Err()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel resolves a pending promise with api.ErrCanceled; for a running
// operation it only cancels the operation's context. Completed promises are
// unaffected.
func (p *promise) Cancel() {
	p.cancel()
	if p.state.CompareAndSwap(promisePending, promiseDone) {
		p.complete(nil, api.ErrCanceled)
	}
}
