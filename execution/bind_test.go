// File: execution/bind_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package execution_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-serve/api"
	"github.com/momentics/hioload-serve/concurrency"
	"github.com/momentics/hioload-serve/execution"
)

func newExec() *execution.Execution {
	return execution.New(context.Background(), nil, nil, nil)
}

func TestCurrentAbsentWithoutBinding(t *testing.T) {
	_, ok := execution.Current()
	assert.False(t, ok, "unbound goroutine must observe no execution")
}

func TestBindScopesTheBinding(t *testing.T) {
	e := newExec()
	execution.Bind(e, func() {
		got, ok := execution.Current()
		require.True(t, ok)
		assert.Same(t, e, got)
	})
	_, ok := execution.Current()
	assert.False(t, ok, "binding must be cleared after Bind returns")
}

func TestNestedBindRestoresOuter(t *testing.T) {
	outer, inner := newExec(), newExec()
	execution.Bind(outer, func() {
		execution.Bind(inner, func() {
			got, ok := execution.Current()
			require.True(t, ok)
			assert.Same(t, inner, got)
		})
		got, ok := execution.Current()
		require.True(t, ok)
		assert.Same(t, outer, got, "inner exit must restore the outer binding")
	})
	_, ok := execution.Current()
	assert.False(t, ok)
}

func TestBindClearsOnPanic(t *testing.T) {
	e := newExec()
	func() {
		defer func() {
			require.NotNil(t, recover(), "panic must propagate out of Bind")
		}()
		execution.Bind(e, func() { panic("boom") })
	}()
	_, ok := execution.Current()
	assert.False(t, ok, "binding must be cleared on the panic exit path")
}

func TestBindingIsGoroutineLocal(t *testing.T) {
	e := newExec()
	execution.Bind(e, func() {
		seen := make(chan bool)
		go func() {
			_, ok := execution.Current()
			seen <- ok
		}()
		assert.False(t, <-seen, "a different goroutine must not observe the binding")
	})
}

func TestProviderBehavioralEquality(t *testing.T) {
	p1 := execution.NewProvider()
	p2 := execution.NewProvider()
	assert.Equal(t, p1, p2, "provider handles are value-equal")

	_, ok := p1.Get()
	assert.False(t, ok)

	e := newExec()
	execution.Bind(e, func() {
		g1, ok1 := p1.Get()
		g2, ok2 := p2.Get()
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Same(t, g1, g2, "distinct handles resolve identically")
	})
}

// TestHandoffDoesNotPropagate demonstrates the propagation boundary: a
// binding on the submitting goroutine is invisible inside the background
// executor unless the operation re-binds explicitly.
func TestHandoffDoesNotPropagate(t *testing.T) {
	bg := concurrency.NewBackground(1)
	defer bg.Close()

	e := newExec()
	var ambient api.Promise
	var rebound api.Promise

	execution.Bind(e, func() {
		ambient = bg.Submit(func(ctx context.Context) (any, error) {
			_, ok := execution.Current()
			return ok, nil
		})
		rebound = bg.Submit(func(ctx context.Context) (any, error) {
			carried, ok := execution.FromContext(e.Context())
			if !ok {
				return nil, nil
			}
			var seen api.Execution
			execution.Bind(carried, func() {
				seen, _ = execution.Current()
			})
			return seen, nil
		})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	v, err := ambient.Wait(ctx)
	require.NoError(t, err)
	assert.False(t, v.(bool), "binding must not follow Submit across goroutines")

	v, err = rebound.Wait(ctx)
	require.NoError(t, err)
	assert.Same(t, e, v, "explicit re-bind on the destination goroutine works")
}
