//go:build !deadlock

// Package sync provides the mutex types used across vendbus. Building with
// -tags deadlock swaps them for go-deadlock, which reports lock cycles such
// as a subscriber that blocks on a lock held by its publisher.
package sync

import "sync"

// Mutex is the standard sync.Mutex.
type Mutex = sync.Mutex

// RWMutex is the standard sync.RWMutex.
type RWMutex = sync.RWMutex

// WaitGroup is the standard sync.WaitGroup.
type WaitGroup = sync.WaitGroup

// DetectionEnabled reports whether lock cycle detection is compiled in.
func DetectionEnabled() bool {
	return false
}
