// File: execution/execution_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package execution_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-serve/execution"
)

func TestRequestScopedValues(t *testing.T) {
	e := newExec()

	_, ok := e.Get("k")
	assert.False(t, ok)

	e.Set("k", 42)
	v, ok := e.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	e.Set("other", "x")
	assert.ElementsMatch(t, []string{"k", "other"}, e.Keys())

	e.Delete("k")
	_, ok = e.Get("k")
	assert.False(t, ok)
}

func TestExecutionContextCarriesItself(t *testing.T) {
	e := execution.New(context.Background(), nil, nil, nil)
	got, ok := execution.FromContext(e.Context())
	require.True(t, ok)
	assert.Same(t, e, got)
}

func TestFromContextAbsent(t *testing.T) {
	_, ok := execution.FromContext(context.Background())
	assert.False(t, ok)
}

func TestNewContextRoundTrip(t *testing.T) {
	e := newExec()
	ctx := execution.NewContext(context.Background(), e)
	got, ok := execution.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, e, got)
}

func TestNilContextDefaults(t *testing.T) {
	e := execution.New(nil, nil, nil, nil) //nolint:staticcheck // nil ctx is part of the contract
	require.NotNil(t, e.Context())
}
