//go:build deadlock

// Package sync provides the mutex types used across vendbus. Building with
// -tags deadlock swaps them for go-deadlock, which reports lock cycles such
// as a subscriber that blocks on a lock held by its publisher.
package sync

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// Mutex wraps go-deadlock.Mutex.
type Mutex = deadlock.Mutex

// RWMutex wraps go-deadlock.RWMutex.
type RWMutex = deadlock.RWMutex

// WaitGroup is the standard sync.WaitGroup.
type WaitGroup = sync.WaitGroup

// DetectionEnabled reports whether lock cycle detection is compiled in.
func DetectionEnabled() bool {
	return !deadlock.Opts.Disable
}

func init() {
	deadlock.Opts.DeadlockTimeout = 30 * time.Second

	// Disable detection if VENDBUS_NO_DEADLOCK_DETECT is set
	if os.Getenv("VENDBUS_NO_DEADLOCK_DETECT") != "" {
		deadlock.Opts.Disable = true
		return
	}

	deadlock.Opts.PrintAllCurrentGoroutines = true
	deadlock.Opts.OnPotentialDeadlock = func() {
		log.Error().Msg("potential deadlock detected")
		os.Exit(2)
	}

	log.Debug().Msg("deadlock detection enabled")
}
