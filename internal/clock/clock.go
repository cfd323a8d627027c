package clock

import (
	"sync"
	"time"
)

// TimePoint is an opaque point in time produced by a Clock.
// It must only be passed back to Diff of the clock that produced it.
type TimePoint struct {
	t time.Time
	n int64
}

// Clock is a monotonic time source.
type Clock interface {
	Now() TimePoint
	// Diff returns the time elapsed between start and end.
	Diff(start, end TimePoint) time.Duration
}

// Monotonic reads the runtime's monotonic clock.
type Monotonic struct{}

// Now returns the current time point.
func (Monotonic) Now() TimePoint {
	return TimePoint{t: time.Now()}
}

// Diff returns end-start, never negative.
func (Monotonic) Diff(start, end TimePoint) time.Duration {
	d := end.t.Sub(start.t)
	if d < 0 {
		return 0
	}
	return d
}

// Fake is a scripted clock for tests. Each call to Now advances the clock by
// the next configured step (cycling through Steps), so a Now/Now pair yields
// a known duration.
type Fake struct {
	mu    sync.Mutex
	Steps []time.Duration
	now   int64
	calls int
}

// NewFake creates a fake clock advancing by the given steps.
func NewFake(steps ...time.Duration) *Fake {
	return &Fake{Steps: steps}
}

// NewFakeRuns creates a fake clock where every start/end pair measures the
// next duration of runs, in order. Start readings do not advance the clock.
func NewFakeRuns(runs ...time.Duration) *Fake {
	steps := make([]time.Duration, 0, len(runs)*2)
	for _, r := range runs {
		steps = append(steps, 0, r)
	}
	return NewFake(steps...)
}

// Now advances the fake clock and returns the new reading.
func (f *Fake) Now() TimePoint {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Steps) > 0 {
		f.now += int64(f.Steps[f.calls%len(f.Steps)])
	}
	f.calls++
	return TimePoint{n: f.now}
}

// Diff returns end-start, never negative.
func (f *Fake) Diff(start, end TimePoint) time.Duration {
	d := time.Duration(end.n - start.n)
	if d < 0 {
		return 0
	}
	return d
}

// Calls returns how many times Now was called.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
