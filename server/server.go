// File: server/server.go
// Package server wires the launch configuration, threading policy, buffer
// policy and execution binding into a running accept/dispatch loop.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"crypto/tls"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-serve/api"
	"github.com/momentics/hioload-serve/concurrency"
	"github.com/momentics/hioload-serve/launch"
)

// ErrShutdownTimeout reports that graceful teardown outlived the configured
// shutdown timeout and in-flight work was abandoned.
var ErrShutdownTimeout = errors.New("graceful shutdown timed out")

const defaultShutdownTimeout = 30 * time.Second

// Server is the embedded network server core. It owns the listener, the
// optional dedicated worker pool and the background executor; request
// semantics live entirely in the configured root handler.
type Server struct {
	cfg      *launch.Config
	log      *zap.Logger
	decision launch.Decision
	handler  api.Handler

	acceptLoops     int
	bgWorkers       int
	shutdownTimeout time.Duration
	poolOpts        []concurrency.PoolOption
	workerPool      *concurrency.Pool // nil under inline dispatch
	background      *concurrency.Background
	reloader        *launch.Reloader
	listener        net.Listener
	listenerReady   chan struct{}

	mu       sync.Mutex
	shutdown bool
}

// New builds a Server from a frozen launch configuration. The handler
// factory is invoked exactly once, here.
func New(cfg *launch.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, &launch.ConfigError{Field: "config", Reason: "nil"}
	}
	if cfg.HandlerFactory() == nil {
		return nil, &launch.ConfigError{Field: "handlerFactory", Reason: "required to start a server"}
	}

	s := &Server{
		cfg:             cfg,
		log:             zap.NewNop(),
		decision:        launch.Decide(cfg.WorkerThreads()),
		acceptLoops:     defaultAcceptLoops(),
		shutdownTimeout: defaultShutdownTimeout,
		listenerReady:   make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}

	handler, err := cfg.HandlerFactory()(cfg)
	if err != nil {
		return nil, err
	}
	s.handler = handler

	if s.decision.Mode == launch.DedicatedPool {
		poolOpts := append([]concurrency.PoolOption{concurrency.WithPoolLogger(s.log)}, s.poolOpts...)
		s.workerPool = concurrency.NewPool(s.decision.Workers, poolOpts...)
	}
	s.background = concurrency.NewBackground(s.bgWorkers, concurrency.WithBackgroundLogger(s.log))
	return s, nil
}

// Decision exposes the derived threading strategy.
func (s *Server) Decision() launch.Decision { return s.decision }

// Background exposes the blocking-work executor, also reachable from every
// execution via Execution.Background.
func (s *Server) Background() api.Background { return s.background }

// Addr returns the bound listen address once Run has opened the listener,
// or nil before that. Useful with port 0.
func (s *Server) Addr() net.Addr {
	select {
	case <-s.listenerReady:
		return s.listener.Addr()
	default:
		return nil
	}
}

// listen opens the TCP listener, wrapping it with TLS when the
// configuration carries TLS material.
func (s *Server) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr())
	if err != nil {
		return nil, err
	}
	if tlsCfg, ok := s.cfg.TLS(); ok {
		ln = tls.NewListener(ln, tlsCfg)
	}
	return ln, nil
}
