package timectrl

import (
	"sync"
	"time"
)

// SimClock is a read-only view of simulation time, letting consumers
// depend on a clock abstraction rather than the concrete controller.
type SimClock interface {
	// Now returns the current simulation time.
	Now() time.Time
}

// Mode describes how the TimeController advances simulation time.
type Mode int

const (
	// RealTime advances according to wall-clock time.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run while still
	// stepping by Tick.
	Accelerated
)

// TimeController drives simulation epochs and notifies registered
// listeners on every tick. The environment demo uses it to sample
// assembled ephemerides over a time span.
type TimeController struct {
	mu        sync.RWMutex
	StartTime time.Time
	Tick      time.Duration
	Mode      Mode

	currentTime time.Time
	listeners   []func(time.Time)
}

// NewTimeController constructs a controller.
func NewTimeController(start time.Time, tick time.Duration, mode Mode) *TimeController {
	return &TimeController{
		StartTime:   start,
		Tick:        tick,
		Mode:        mode,
		currentTime: start,
	}
}

// Now returns the current simulation time. Implements SimClock.
func (tc *TimeController) Now() time.Time {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.currentTime
}

// SetTime jumps the simulation clock to the given epoch.
func (tc *TimeController) SetTime(t time.Time) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.currentTime = t
}

// AddListener registers a callback invoked on every tick.
func (tc *TimeController) AddListener(fn func(time.Time)) {
	tc.listeners = append(tc.listeners, fn)
}

// Start runs the controller for the specified simulation duration in a
// separate goroutine. It returns a channel that is closed when the
// controller finishes. In RealTime mode each tick waits the tick
// interval on the wall clock; in Accelerated mode ticks run
// back-to-back.
func (tc *TimeController) Start(duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		tc.mu.Lock()
		simTime := tc.StartTime
		tc.currentTime = simTime
		tc.mu.Unlock()

		var ticker *time.Ticker
		if tc.Mode == RealTime {
			ticker = time.NewTicker(tc.Tick)
			defer ticker.Stop()
		}

		for elapsed := time.Duration(0); duration <= 0 || elapsed < duration; elapsed += tc.Tick {
			if ticker != nil {
				<-ticker.C
			}
			simTime = simTime.Add(tc.Tick)

			tc.mu.Lock()
			tc.currentTime = simTime
			tc.mu.Unlock()

			for _, fn := range tc.listeners {
				fn(simTime)
			}
		}
	}()
	return done
}
