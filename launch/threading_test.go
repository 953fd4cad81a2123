// File: launch/threading_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package launch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/hioload-serve/launch"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		workers int
		mode    launch.Mode
		size    int
	}{
		{workers: -100, mode: launch.Inline},
		{workers: -1, mode: launch.Inline},
		{workers: 0, mode: launch.Inline},
		{workers: 1, mode: launch.DedicatedPool, size: 1},
		{workers: 8, mode: launch.DedicatedPool, size: 8},
		{workers: 1024, mode: launch.DedicatedPool, size: 1024},
	}
	for _, tt := range tests {
		d := launch.Decide(tt.workers)
		assert.Equal(t, tt.mode, d.Mode, "workers=%d", tt.workers)
		assert.Equal(t, tt.size, d.Workers, "workers=%d", tt.workers)
	}
}

func TestDecideIsPure(t *testing.T) {
	// Same input, same output, no state between calls.
	for i := 0; i < 3; i++ {
		assert.Equal(t, launch.Decide(4), launch.Decide(4))
		assert.Equal(t, launch.Decide(0), launch.Decide(0))
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "inline", launch.Inline.String())
	assert.Equal(t, "dedicated-pool", launch.DedicatedPool.String())
	assert.Equal(t, "unknown", launch.Mode(99).String())
}
