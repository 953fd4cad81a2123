// File: concurrency/queue.go
// Package concurrency provides the executor pools and lock-free primitives
// backing the server's threading model.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded MPMC queue using per-cell sequence numbers, after Dmitry Vyukov's
// design. Used as the free list inside pooled allocators and as worker-local
// task queues.

package concurrency

import "sync/atomic"

const cacheLinePad = 64

// LockFreeQueue is a bounded multi-producer/multi-consumer queue. Capacity
// is rounded up to a power of two.
type LockFreeQueue[T any] struct {
	head atomic.Uint64
	_    [cacheLinePad]byte
	tail atomic.Uint64
	_    [cacheLinePad]byte
	mask uint64
	ring []slot[T]
}

type slot[T any] struct {
	sequence atomic.Uint64
	value    T
}

// NewLockFreeQueue creates a queue holding up to capacity elements.
func NewLockFreeQueue[T any](capacity int) *LockFreeQueue[T] {
	size := 2
	for size < capacity {
		size <<= 1
	}
	q := &LockFreeQueue[T]{
		mask: uint64(size - 1),
		ring: make([]slot[T], size),
	}
	for i := range q.ring {
		q.ring[i].sequence.Store(uint64(i))
	}
	return q
}

// Enqueue adds v; returns false when the queue is full.
func (q *LockFreeQueue[T]) Enqueue(v T) bool {
	for {
		tail := q.tail.Load()
		s := &q.ring[tail&q.mask]
		diff := int64(s.sequence.Load()) - int64(tail)
		switch {
		case diff == 0:
			if q.tail.CompareAndSwap(tail, tail+1) {
				s.value = v
				s.sequence.Store(tail + 1)
				return true
			}
		case diff < 0:
			return false // full
		}
		// otherwise the tail advanced under us; retry
	}
}

// Dequeue removes the oldest element; ok is false when empty.
func (q *LockFreeQueue[T]) Dequeue() (v T, ok bool) {
	for {
		head := q.head.Load()
		s := &q.ring[head&q.mask]
		diff := int64(s.sequence.Load()) - int64(head+1)
		switch {
		case diff == 0:
			if q.head.CompareAndSwap(head, head+1) {
				v = s.value
				var zero T
				s.value = zero
				s.sequence.Store(head + q.mask + 1)
				return v, true
			}
		case diff < 0:
			var zero T
			return zero, false // empty
		}
	}
}
