//go:build linux

// File: concurrency/pin_linux.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CPU pinning via sched_setaffinity, pure Go.

package concurrency

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinCurrentThread locks the calling goroutine to its OS thread and binds
// that thread to one CPU core. The core is picked by worker id modulo the
// machine's CPU count.
func PinCurrentThread(workerID int) error {
	runtime.LockOSThread()
	cpu := workerID % runtime.NumCPU()
	var set unix.CPUSet
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
