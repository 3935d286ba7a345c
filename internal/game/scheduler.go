package game

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled callback. Safe to call more than once; after
// it returns the callback either already ran or never will.
type CancelFunc func()

// Scheduler arms cancelable timers for the engine. The engine additionally
// validates every callback against the state it was armed in, so a callback
// that loses the race with its CancelFunc is still harmless.
type Scheduler interface {
	// After runs fn once after d.
	After(d time.Duration, fn func()) CancelFunc
	// Every runs fn repeatedly every d until canceled.
	Every(d time.Duration, fn func()) CancelFunc
}

// ClockScheduler is the production Scheduler backed by the time package.
type ClockScheduler struct{}

// NewClockScheduler creates a Scheduler backed by real timers.
func NewClockScheduler() *ClockScheduler {
	return &ClockScheduler{}
}

func (s *ClockScheduler) After(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

func (s *ClockScheduler) Every(d time.Duration, fn func()) CancelFunc {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
