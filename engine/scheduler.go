package engine

import (
	"math/rand/v2"
	"time"
)

// Scheduler arms one-shot timers. The controller re-arms after every tick,
// so a speed change applies from the next tick on.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// WallClock schedules on real time.
var WallClock Scheduler = wallScheduler{}

// globalRand draws from the unseeded, goroutine-safe math/rand/v2 source.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}
