// File: pool/default.go
// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"

	"github.com/momentics/hioload-serve/api"
)

var (
	defaultOnce sync.Once
	defaultPool *Pooled
)

// Default returns a process-wide pooled allocator so components that never
// configure one still share free lists instead of fragmenting reuse.
func Default() api.Allocator {
	defaultOnce.Do(func() {
		defaultPool = NewPooled()
	})
	return defaultPool
}
