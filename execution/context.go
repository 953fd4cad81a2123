// File: execution/context.go
// Package execution
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Explicit propagation across handoff boundaries. Ambient bindings stop at
// goroutine edges; a context.Context carrying the execution crosses them.

package execution

import (
	"context"

	"github.com/momentics/hioload-serve/api"
)

type ctxKey struct{}

// NewContext returns a context carrying e. Use this to hand an execution
// across a pool boundary; the receiver can re-bind with Bind if it needs
// ambient lookup to work on its side.
func NewContext(ctx context.Context, e api.Execution) context.Context {
	return context.WithValue(ctx, ctxKey{}, e)
}

// FromContext extracts the execution carried by ctx, if any.
func FromContext(ctx context.Context) (api.Execution, bool) {
	e, ok := ctx.Value(ctxKey{}).(api.Execution)
	return e, ok
}
