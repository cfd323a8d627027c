package benchmark

import (
	"io"
	"time"

	"benchkit/internal/clock"
	"benchkit/internal/outputter"
	"benchkit/internal/result"
)

// Report is the outcome of one executed benchmark.
type Report struct {
	Descriptor Descriptor
	Result     result.Result
}

// Summary describes one RunAllTests call.
type Summary struct {
	Enabled  int
	Disabled int
	// Executed counts tests that were timed; Skipped those left out by
	// include filters.
	Executed int
	Skipped  int
	Reports  []Report
}

// RunAllTests runs every registered test in order and notifies the attached
// outputters. extra outputters are attached for this call only. When no
// outputter is attached at all the default console outputter is used.
//
// Disabled tests are reported through SkipDisabledTest and never
// instantiated. Tests not matching the include filters are skipped without
// any notification. Once started, the registry no longer accepts
// registrations until Reset.
func (r *Registry) RunAllTests(extra ...outputter.Outputter) Summary {
	r.mu.Lock()
	r.started = true
	tests := append([]*Descriptor(nil), r.tests...)
	includes := append([]string(nil), r.includes...)
	sinks := make(outputter.Multi, 0, len(r.outputters)+len(extra))
	for _, a := range r.outputters {
		sinks = append(sinks, a.o)
	}
	sinks = append(sinks, extra...)
	if len(sinks) == 0 {
		sinks = append(sinks, r.fallbackOutputter())
	}
	clk := r.clock
	r.mu.Unlock()

	var sum Summary
	for _, d := range tests {
		if d.Disabled {
			sum.Disabled++
		} else {
			sum.Enabled++
		}
	}

	log := r.log()
	log.Info("running benchmarks", "enabled", sum.Enabled, "disabled", sum.Disabled, "outputters", len(sinks))
	sinks.Begin(sum.Enabled, sum.Disabled)

	for _, d := range tests {
		if !r.included(d, includes) {
			sum.Skipped++
			continue
		}
		if d.Disabled {
			sinks.SkipDisabledTest(d.FixtureName, d.TestName, d.Parameters, d.Runs, d.Iterations)
			continue
		}

		sinks.BeginTest(d.FixtureName, d.TestName, d.Parameters, d.Runs, d.Iterations)
		runTimes := make([]time.Duration, d.Runs)
		for i := range runTimes {
			elapsed, err := runOnce(clk, d.factory.CreateTest(), d.Iterations)
			if err != nil {
				log.Warn("closing benchmark instance failed", "name", d.DisplayName(), "run", i, "error", err)
			}
			runTimes[i] = elapsed
		}
		res := result.FromRuns(runTimes, d.Iterations)
		if err := res.Validate(); err != nil {
			log.Warn("degenerate benchmark result", "name", d.DisplayName(), "error", err)
		}
		sinks.EndTest(d.FixtureName, d.TestName, d.Parameters, res)

		sum.Executed++
		sum.Reports = append(sum.Reports, Report{Descriptor: d.view(), Result: res})
	}

	sinks.End(sum.Enabled, sum.Disabled)
	log.Info("benchmarks finished", "executed", sum.Executed, "disabled", sum.Disabled, "skipped", sum.Skipped)

	for _, s := range sinks {
		if e, ok := s.(outputter.Errer); ok && e.Err() != nil {
			log.Error("outputter failed", "error", e.Err())
		}
	}
	return sum
}

// runOnce performs one timed run of t. Only the iterations of TestBody are
// inside the timed window. A test implementing io.Closer is closed after
// TearDown and its Close error returned alongside the measurement.
func runOnce(clk clock.Clock, t Test, iterations int) (time.Duration, error) {
	t.SetUp()
	start := clk.Now()
	for range iterations {
		t.TestBody()
	}
	end := clk.Now()
	t.TearDown()

	var err error
	if c, ok := t.(io.Closer); ok {
		err = c.Close()
	}
	return clk.Diff(start, end), err
}
