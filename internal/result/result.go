// Package result derives throughput and extremal statistics from the
// per-run timings of one benchmark.
package result

import (
	"errors"
	"fmt"
	"time"
)

// perSecond converts a rate per nanosecond into a rate per second.
const perSecond = float64(time.Second)

// ErrDegenerateMeasurement is reported when a run measured zero elapsed time,
// which turns every throughput figure derived from it into +Inf.
var ErrDegenerateMeasurement = errors.New("degenerate measurement: run measured zero elapsed time")

// Result is the immutable outcome of one benchmark. Every metric is a pure
// function of total, minimum, maximum, run count and iteration count.
//
// Times are float64 nanoseconds. Rates divide in IEEE arithmetic, so a zero
// duration yields +Inf rather than a panic; see Degenerate.
type Result struct {
	total      time.Duration
	minRun     time.Duration
	maxRun     time.Duration
	runs       int
	iterations int
	samples    []time.Duration
}

// New builds a Result from aggregate figures.
func New(total, minRun, maxRun time.Duration, runs, iterations int) Result {
	return Result{
		total:      total,
		minRun:     minRun,
		maxRun:     maxRun,
		runs:       runs,
		iterations: iterations,
	}
}

// FromRuns aggregates per-run elapsed times. The samples are kept so that
// renderers can list individual runs.
func FromRuns(runTimes []time.Duration, iterations int) Result {
	r := Result{
		runs:       len(runTimes),
		iterations: iterations,
		samples:    append([]time.Duration(nil), runTimes...),
	}
	for i, d := range runTimes {
		r.total += d
		if i == 0 || d < r.minRun {
			r.minRun = d
		}
		if i == 0 || d > r.maxRun {
			r.maxRun = d
		}
	}
	return r
}

// Runs is the number of runs.
func (r Result) Runs() int { return r.runs }

// Iterations is the number of iterations per run.
func (r Result) Iterations() int { return r.iterations }

// Samples returns a copy of the per-run times, or nil when the result was
// built from aggregates.
func (r Result) Samples() []time.Duration {
	if r.samples == nil {
		return nil
	}
	return append([]time.Duration(nil), r.samples...)
}

// TimeTotal is the sum of all run times.
func (r Result) TimeTotal() float64 { return float64(r.total) }

// RunTimeAverage is the mean time per run.
func (r Result) RunTimeAverage() float64 { return float64(r.total) / float64(r.runs) }

// RunTimeMinimum is the fastest run.
func (r Result) RunTimeMinimum() float64 { return float64(r.minRun) }

// RunTimeMaximum is the slowest run.
func (r Result) RunTimeMaximum() float64 { return float64(r.maxRun) }

// RunsPerSecondAverage is derived from the mean run time.
func (r Result) RunsPerSecondAverage() float64 { return perSecond / r.RunTimeAverage() }

// RunsPerSecondMaximum is derived from the fastest run.
func (r Result) RunsPerSecondMaximum() float64 { return perSecond / r.RunTimeMinimum() }

// RunsPerSecondMinimum is derived from the slowest run.
func (r Result) RunsPerSecondMinimum() float64 { return perSecond / r.RunTimeMaximum() }

// IterationTimeAverage is the mean time per iteration.
func (r Result) IterationTimeAverage() float64 {
	return r.RunTimeAverage() / float64(r.iterations)
}

// IterationTimeMinimum is the per-iteration time of the fastest run.
func (r Result) IterationTimeMinimum() float64 {
	return r.RunTimeMinimum() / float64(r.iterations)
}

// IterationTimeMaximum is the per-iteration time of the slowest run.
func (r Result) IterationTimeMaximum() float64 {
	return r.RunTimeMaximum() / float64(r.iterations)
}

// IterationsPerSecondAverage is derived from the mean iteration time.
func (r Result) IterationsPerSecondAverage() float64 {
	return perSecond / r.IterationTimeAverage()
}

// IterationsPerSecondMinimum is derived from the slowest iteration time.
func (r Result) IterationsPerSecondMinimum() float64 {
	return perSecond / r.IterationTimeMaximum()
}

// IterationsPerSecondMaximum is derived from the fastest iteration time.
func (r Result) IterationsPerSecondMaximum() float64 {
	return perSecond / r.IterationTimeMinimum()
}

// Degenerate reports whether the fastest run took no measurable time.
func (r Result) Degenerate() bool {
	return r.runs > 0 && r.minRun <= 0
}

// Validate returns ErrDegenerateMeasurement for degenerate results.
func (r Result) Validate() error {
	if r.Degenerate() {
		return fmt.Errorf("%w (%d runs, %d iterations)", ErrDegenerateMeasurement, r.runs, r.iterations)
	}
	return nil
}
