//go:build !linux

// File: concurrency/pin_other.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pinning fallback for platforms without sched_setaffinity. The goroutine
// is still locked to an OS thread so thread-bound state stays coherent.

package concurrency

import "runtime"

// PinCurrentThread locks the calling goroutine to its OS thread. CPU
// binding is not performed on this platform.
func PinCurrentThread(workerID int) error {
	runtime.LockOSThread()
	return nil
}
