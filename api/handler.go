// File: api/handler.go
// Package api defines Handler and HandlerFactory.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Handler processes one execution. The wire protocol is the handler's
// business; the core only guarantees an active binding for the duration of
// Serve.
//
// Under inline dispatch (Config.WorkerThreads <= 0) Serve runs on the
// goroutine that accepted the connection and MUST NOT perform blocking
// operations there; offload them via Execution.Background. This is a caller
// obligation, not a runtime check.
type Handler interface {
	Serve(exec Execution) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(Execution) error

// Serve implements Handler.
func (f HandlerFunc) Serve(exec Execution) error { return f(exec) }

// HandlerFactory creates the root handler for a server. It is invoked
// exactly once, at startup, with the final immutable configuration.
type HandlerFactory func(cfg Config) (Handler, error)
