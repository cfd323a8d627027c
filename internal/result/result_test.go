package result

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromRuns_Statistics(t *testing.T) {
	r := FromRuns([]time.Duration{200 * time.Microsecond, 100 * time.Microsecond, 300 * time.Microsecond}, 10)

	us := float64(time.Microsecond)
	assert.Equal(t, 3, r.Runs())
	assert.Equal(t, 10, r.Iterations())
	assert.InDelta(t, 600*us, r.TimeTotal(), 1e-9)
	assert.InDelta(t, 200*us, r.RunTimeAverage(), 1e-9)
	assert.InDelta(t, 100*us, r.RunTimeMinimum(), 1e-9)
	assert.InDelta(t, 300*us, r.RunTimeMaximum(), 1e-9)
	assert.InDelta(t, 5000.0, r.RunsPerSecondAverage(), 1e-6)
	assert.InDelta(t, 10000.0, r.RunsPerSecondMaximum(), 1e-6)
	assert.InDelta(t, 1e6/300, r.RunsPerSecondMinimum(), 1e-6)
	assert.InDelta(t, 20*us, r.IterationTimeAverage(), 1e-9)
	assert.InDelta(t, 10*us, r.IterationTimeMinimum(), 1e-9)
	assert.InDelta(t, 30*us, r.IterationTimeMaximum(), 1e-9)
	assert.InDelta(t, 50000.0, r.IterationsPerSecondAverage(), 1e-6)
	assert.InDelta(t, 100000.0, r.IterationsPerSecondMaximum(), 1e-6)
	assert.InDelta(t, 1e7/300, r.IterationsPerSecondMinimum(), 1e-6)
	assert.NoError(t, r.Validate())
}

func TestFromRuns_OrderIndependent(t *testing.T) {
	orders := [][]time.Duration{
		{100, 200, 300},
		{300, 200, 100},
		{200, 300, 100},
	}
	for _, o := range orders {
		r := FromRuns(o, 1)
		assert.Equal(t, 100.0, r.RunTimeMinimum())
		assert.Equal(t, 300.0, r.RunTimeMaximum())
	}
}

func TestNew_MatchesFromRuns(t *testing.T) {
	agg := New(600*time.Microsecond, 100*time.Microsecond, 300*time.Microsecond, 3, 10)
	runs := FromRuns([]time.Duration{100 * time.Microsecond, 200 * time.Microsecond, 300 * time.Microsecond}, 10)

	assert.Equal(t, runs.RunsPerSecondAverage(), agg.RunsPerSecondAverage())
	assert.Equal(t, runs.IterationsPerSecondMinimum(), agg.IterationsPerSecondMinimum())
	assert.Nil(t, agg.Samples())
}

func TestSamples_AreCopied(t *testing.T) {
	in := []time.Duration{1, 2}
	r := FromRuns(in, 1)
	in[0] = 99

	s := r.Samples()
	assert.Equal(t, []time.Duration{1, 2}, s)
	s[1] = 42
	assert.Equal(t, []time.Duration{1, 2}, r.Samples())
}

func TestDegenerate_PropagatesInfinity(t *testing.T) {
	r := FromRuns([]time.Duration{0, 10 * time.Nanosecond}, 5)

	assert.True(t, r.Degenerate())
	assert.True(t, math.IsInf(r.RunsPerSecondMaximum(), 1))
	assert.True(t, math.IsInf(r.IterationsPerSecondMaximum(), 1))
	assert.False(t, math.IsInf(r.RunsPerSecondAverage(), 0))

	err := r.Validate()
	assert.True(t, errors.Is(err, ErrDegenerateMeasurement))
}

func TestDegenerate_AllZero(t *testing.T) {
	r := FromRuns([]time.Duration{0, 0}, 1)
	assert.True(t, math.IsInf(r.RunsPerSecondAverage(), 1))
	assert.True(t, r.Degenerate())
}
