// File: execution/goid.go
// Package execution
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Goroutine identity for the binding registry. The id is parsed from the
// stack header ("goroutine N [running]:"), the only stable way to obtain it
// without cgo or linkname tricks. Called once per Bind/Current, which sit
// at dispatch boundaries rather than on per-byte hot paths.

package execution

import "runtime"

func goroutineID() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	// Skip "goroutine " and accumulate digits until the following space.
	var id uint64
	for _, c := range buf[len("goroutine "):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
