// File: server/options.go
// Package server defines functional options for the Server.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-serve/concurrency"
)

const maxDefaultAcceptLoops = 8

// Option customizes server initialization.
type Option func(*Server)

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAcceptLoops sets the number of accept goroutines. These are the
// "I/O threads": a small fixed set that must never block, which is why
// inline handlers carry the no-blocking obligation.
func WithAcceptLoops(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.acceptLoops = n
		}
	}
}

// WithBackgroundWorkers sets the blocking-pool size. Zero or negative keeps
// the concurrency package default.
func WithBackgroundWorkers(n int) Option {
	return func(s *Server) { s.bgWorkers = n }
}

// WithShutdownTimeout bounds graceful teardown after Run's context is
// canceled. When in-flight handlers outlive the bound, Run abandons them
// and returns ErrShutdownTimeout. The default is 30 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithPoolOptions forwards options to the dedicated worker pool, e.g.
// backpressure policy or CPU pinning. Ignored under inline dispatch.
func WithPoolOptions(opts ...concurrency.PoolOption) Option {
	return func(s *Server) { s.poolOpts = append(s.poolOpts, opts...) }
}

func defaultAcceptLoops() int {
	n := runtime.NumCPU()
	if n > maxDefaultAcceptLoops {
		n = maxDefaultAcceptLoops
	}
	return n
}
