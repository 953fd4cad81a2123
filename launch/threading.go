// File: launch/threading.go
// Package launch
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Threading policy: a pure mapping from the configured worker count to how
// request handling executes.

package launch

// Mode enumerates the two request dispatch strategies.
type Mode int

const (
	// Inline runs handlers directly on the goroutine that accepted the
	// connection. Handlers must not block there.
	Inline Mode = iota

	// DedicatedPool dispatches handlers to a bounded worker pool.
	DedicatedPool
)

func (m Mode) String() string {
	switch m {
	case Inline:
		return "inline"
	case DedicatedPool:
		return "dedicated-pool"
	default:
		return "unknown"
	}
}

// Decision is the derived threading strategy. Workers is meaningful only
// for DedicatedPool.
type Decision struct {
	Mode    Mode
	Workers int
}

// Decide maps a configured worker count to a Decision. Total and
// side-effect free: workerThreads > 0 yields DedicatedPool of that size,
// anything else yields Inline.
func Decide(workerThreads int) Decision {
	if workerThreads > 0 {
		return Decision{Mode: DedicatedPool, Workers: workerThreads}
	}
	return Decision{Mode: Inline}
}
