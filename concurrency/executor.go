// File: concurrency/executor.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool is the dedicated request-handling executor: a fixed set of worker
// goroutines fed from a bounded queue. Saturation behavior is pluggable:
// Block parks the submitter until capacity frees (honoring its context),
// Reject fails fast with api.ErrPoolExhausted.

package concurrency

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/momentics/hioload-serve/api"
)

// BackpressurePolicy selects what Submit does when the task queue is full.
type BackpressurePolicy int

const (
	// Block waits for queue capacity, honoring the submitter's context.
	Block BackpressurePolicy = iota

	// Reject fails fast with api.ErrPoolExhausted.
	Reject
)

func (p BackpressurePolicy) String() string {
	switch p {
	case Block:
		return "block"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

const defaultQueueDepth = 256

// PoolOption customizes pool construction.
type PoolOption func(*Pool)

// WithQueueDepth overrides the pending-task queue capacity.
func WithQueueDepth(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.depth = n
		}
	}
}

// WithBackpressure selects the saturation policy. The default is Block.
func WithBackpressure(policy BackpressurePolicy) PoolOption {
	return func(p *Pool) { p.policy = policy }
}

// WithPinning pins each worker to an OS thread and, where the platform
// supports it, to a CPU core.
func WithPinning() PoolOption {
	return func(p *Pool) { p.pin = true }
}

// WithPoolLogger attaches a logger for recovered panics and lifecycle.
func WithPoolLogger(log *zap.Logger) PoolOption {
	return func(p *Pool) { p.log = log }
}

// Pool is a bounded worker pool. It never grows: saturation surfaces to the
// submitter per the configured backpressure policy.
type Pool struct {
	tasks   chan func()
	slots   *semaphore.Weighted // queue slots, Block mode only
	policy  BackpressurePolicy
	depth   int
	workers int
	pin     bool
	log     *zap.Logger

	// mu orders Submit's enqueue against Close marking the pool closed: every
	// task accepted with a nil error is in the queue before closeCh closes,
	// so the workers' shutdown drain always runs it.
	mu      sync.RWMutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

var _ api.Executor = (*Pool)(nil)

// NewPool starts a pool of the given size. Sizes below one are clamped.
func NewPool(workers int, opts ...PoolOption) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		policy:  Block,
		depth:   defaultQueueDepth,
		workers: workers,
		log:     zap.NewNop(),
		closeCh: make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	p.tasks = make(chan func(), p.depth)
	p.slots = semaphore.NewWeighted(int64(p.depth))
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
	return p
}

// Submit schedules task per the backpressure policy. It returns
// api.ErrExecutorClosed after Close, api.ErrPoolExhausted when saturated in
// Reject mode, and the context error when a Block-mode wait is abandoned.
// Submit may race Close: a nil return guarantees the task runs.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if p.policy == Reject {
		p.mu.RLock()
		defer p.mu.RUnlock()
		if p.closed {
			return api.ErrExecutorClosed
		}
		select {
		case p.tasks <- task:
			return nil
		default:
			return api.ErrPoolExhausted
		}
	}

	if err := p.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.slots.Release(1)
		return api.ErrExecutorClosed
	}
	// The semaphore bounds enqueued tasks to the queue capacity, so this
	// send cannot block while the read lock is held.
	p.tasks <- task
	return nil
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

// Close stops accepting work and waits for queued tasks to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	close(p.closeCh)
	p.wg.Wait()
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	if p.pin {
		if err := PinCurrentThread(id); err != nil {
			p.log.Debug("worker pin failed", zap.Int("worker", id), zap.Error(err))
		}
	}
	for {
		select {
		case task := <-p.tasks:
			p.take(task)
		case <-p.closeCh:
			// Drain what was accepted before shutdown.
			for {
				select {
				case task := <-p.tasks:
					p.take(task)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) take(task func()) {
	if p.policy == Block {
		p.slots.Release(1)
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panic", zap.Any("panic", r))
		}
	}()
	task()
}
