// File: concurrency/background.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Background runs explicitly offloaded blocking operations on a pool
// isolated from both the accept goroutines and the dedicated worker pool.
// The pending queue is unbounded so submitters are never parked; backlog
// shows up as promise latency, not as stalled dispatch.

package concurrency

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/hioload-serve/api"
)

// BackgroundOption customizes Background construction.
type BackgroundOption func(*Background)

// WithBackgroundLogger attaches a logger for recovered panics.
func WithBackgroundLogger(log *zap.Logger) BackgroundOption {
	return func(b *Background) { b.log = log }
}

// Background is the blocking-work executor. Fixed worker count, unbounded
// FIFO of pending operations.
type Background struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending *queue.Queue // of *pendingOp
	closed  bool

	workers int
	log     *zap.Logger
	wg      sync.WaitGroup
}

type pendingOp struct {
	op api.BackgroundFunc
	p  *promise
}

var _ api.Background = (*Background)(nil)

// NewBackground starts a background executor. Worker counts below one
// default to twice the CPU count, a reasonable floor for blocking work.
func NewBackground(workers int, opts ...BackgroundOption) *Background {
	if workers < 1 {
		workers = 2 * runtime.NumCPU()
	}
	b := &Background{
		pending: queue.New(),
		workers: workers,
		log:     zap.NewNop(),
	}
	b.cond = sync.NewCond(&b.mu)
	for _, o := range opts {
		o(b)
	}
	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go b.run()
	}
	return b
}

// Submit enqueues op and returns its promise. Never blocks on op. After
// Close the promise resolves immediately to api.ErrBackgroundClosed.
func (b *Background) Submit(op api.BackgroundFunc) api.Promise {
	p := newPromise()
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		p.complete(nil, api.ErrBackgroundClosed)
		return p
	}
	b.pending.Add(&pendingOp{op: op, p: p})
	b.cond.Signal()
	b.mu.Unlock()
	return p
}

// Close stops accepting work, fails promises that never started and waits
// for in-flight operations.
func (b *Background) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for b.pending.Length() > 0 {
		item := b.pending.Remove().(*pendingOp)
		item.p.complete(nil, api.ErrBackgroundClosed)
	}
	b.cond.Broadcast()
	b.mu.Unlock()
	b.wg.Wait()
}

func (b *Background) run() {
	defer b.wg.Done()
	for {
		b.mu.Lock()
		for b.pending.Length() == 0 && !b.closed {
			b.cond.Wait()
		}
		if b.pending.Length() == 0 && b.closed {
			b.mu.Unlock()
			return
		}
		item := b.pending.Remove().(*pendingOp)
		b.mu.Unlock()
		b.execute(item)
	}
}

// execute runs one operation, converting every failure mode - error return,
// panic, pre-start cancellation - into a promise resolution. The worker
// itself never dies.
func (b *Background) execute(item *pendingOp) {
	if !item.p.begin() {
		return // canceled before start; promise already resolved
	}
	var (
		value any
		err   error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", api.ErrBackgroundPanic, r)
				b.log.Error("background operation panic", zap.Any("panic", r))
			}
		}()
		value, err = item.op(item.p.ctx)
	}()
	item.p.complete(value, err)
}
