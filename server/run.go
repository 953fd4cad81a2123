// File: server/run.go
// Package server implements the accept/dispatch loop and graceful shutdown.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-serve/execution"
	"github.com/momentics/hioload-serve/launch"
)

// Run opens the listener and serves until ctx is canceled, then tears down
// the reload watcher, the worker pool and the background executor in that
// order. In-flight handlers are given up to the configured shutdown timeout
// (WithShutdownTimeout) to finish; past that Run abandons them and returns
// ErrShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.listen()
	if err != nil {
		return err
	}
	s.listener = ln
	close(s.listenerReady)
	s.log.Info("listening",
		zap.Stringer("addr", ln.Addr()),
		zap.Stringer("dispatch", s.decision.Mode),
		zap.Int("workers", s.decision.Workers),
	)

	if s.cfg.Reloadable() && s.cfg.BaseDir() != "" {
		r, err := launch.NewReloader(s.cfg.BaseDir(), s.log)
		if err != nil {
			ln.Close()
			return err
		}
		s.reloader = r
		r.OnReload(func() {
			s.log.Info("base dir changed, reload requested")
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.acceptLoops; i++ {
		g.Go(func() error { return s.acceptLoop(ctx) })
	}
	g.Go(func() error {
		<-ctx.Done()
		s.close()
		return nil
	})

	finished := make(chan error, 1)
	go func() {
		err := g.Wait()
		s.workerPoolClose()
		s.background.Close()
		finished <- err
	}()

	select {
	case err = <-finished:
	case <-ctx.Done():
		// Teardown has begun; bound it so a stuck handler cannot block
		// shutdown forever.
		timer := time.NewTimer(s.shutdownTimeout)
		defer timer.Stop()
		select {
		case err = <-finished:
		case <-timer.C:
			s.log.Warn("graceful shutdown timed out, abandoning in-flight work",
				zap.Duration("timeout", s.shutdownTimeout))
			return ErrShutdownTimeout
		}
	}
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	return err
}

// OnReload registers fn with the development-mode reload watcher. No-op
// when the configuration is not reloadable or Run has not started it yet.
func (s *Server) OnReload(fn func()) {
	if s.reloader != nil {
		s.reloader.OnReload(fn)
	}
}

func (s *Server) close() {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return
	}
	s.shutdown = true
	s.mu.Unlock()

	if s.reloader != nil {
		s.reloader.Close()
	}
	s.listener.Close()
}

func (s *Server) closing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

func (s *Server) workerPoolClose() {
	if s.workerPool != nil {
		s.workerPool.Close()
	}
}

// acceptLoop is one of the fixed I/O goroutines. It only accepts and
// dispatches; all potentially blocking work belongs to handlers, and under
// inline dispatch to the background executor.
func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closing() || ctx.Err() != nil {
				return nil
			}
			return err
		}
		s.dispatch(ctx, conn)
	}
}

// dispatch routes one connection per the threading decision. Inline runs
// the handler right here on the accept goroutine; DedicatedPool hands it to
// the bounded worker pool and sheds the connection when the pool's
// backpressure policy rejects it.
func (s *Server) dispatch(ctx context.Context, conn net.Conn) {
	switch s.decision.Mode {
	case launch.DedicatedPool:
		if err := s.workerPool.Submit(ctx, func() { s.handle(ctx, conn) }); err != nil {
			s.log.Warn("dispatch rejected", zap.Error(err), zap.Stringer("remote", conn.RemoteAddr()))
			conn.Close()
		}
	default:
		s.handle(ctx, conn)
	}
}

// handle runs the root handler with an execution bound for exactly the
// duration of Serve. The binding is goroutine-local: work the handler
// offloads observes no ambient execution unless it re-binds.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	exec := execution.New(ctx, conn, s.cfg, s.background)
	execution.Bind(exec, func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("handler panic", zap.Any("panic", r), zap.Stringer("remote", conn.RemoteAddr()))
			}
		}()
		if err := s.handler.Serve(exec); err != nil {
			s.log.Warn("handler error", zap.Error(err), zap.Stringer("remote", conn.RemoteAddr()))
		}
	})
}
