package outputter

import (
	"errors"
	"math"
	"testing"
	"time"

	"benchkit/internal/history"
	"benchkit/internal/params"
	"benchkit/internal/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	runs    []history.Run
	saveErr error
}

func (m *memStore) Save(run history.Run) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *memStore) LoadLatest() (*history.Run, error) {
	if len(m.runs) == 0 {
		return nil, nil
	}
	return &m.runs[len(m.runs)-1], nil
}

func (m *memStore) LoadAll() ([]history.Run, error) { return m.runs, nil }
func (m *memStore) Close() error                    { return nil }

func TestHistory_RecordsExecutedBenchmarks(t *testing.T) {
	store := &memStore{}
	h := NewHistory(store)

	h.Begin(2, 1)
	h.SkipDisabledTest("F", "DISABLED_Off", nil, 1, 1)
	ps := params.Parse("(int a, int b)", "(1, 2)")
	h.BeginTest("F", "On", ps, 3, 10)
	h.EndTest("F", "On", ps, sampleResult())
	h.BeginTest("F", "Zero", nil, 1, 1)
	h.EndTest("F", "Zero", nil, result.FromRuns([]time.Duration{0}, 1))
	h.End(2, 1)

	require.NoError(t, h.Err())
	require.Len(t, store.runs, 1)
	require.NotNil(t, h.Last())
	assert.Equal(t, store.runs[0].ID, h.Last().ID)

	recs := store.runs[0].Results
	require.Len(t, recs, 2)
	assert.Equal(t, "(int a = 1, int b = 2)", recs[0].Parameters)
	assert.Equal(t, 10, recs[0].Iterations)
	assert.InDelta(t, 100000.0, recs[0].MinNs, 1e-9)
	assert.InDelta(t, 300000.0, recs[0].MaxNs, 1e-9)
	assert.False(t, math.IsInf(recs[1].RunsPerSecond, 0))
	assert.Zero(t, recs[1].RunsPerSecond)
}

func TestHistory_SaveError(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	h := NewHistory(store)

	h.Begin(0, 0)
	h.End(0, 0)

	assert.EqualError(t, h.Err(), "disk full")
	assert.Nil(t, h.Last())
}
