package outputter

import (
	"benchkit/internal/history"
	"benchkit/internal/params"
	"benchkit/internal/result"
)

// History saves the session's results to a history store at End. Disabled
// benchmarks are not recorded.
type History struct {
	store   history.Store
	records []history.Record
	last    *history.Run
	err     error
}

// NewHistory creates a renderer that saves into store. The store stays owned
// by the caller.
func NewHistory(store history.Store) *History {
	return &History{store: store}
}

// Err returns the save error, if any.
func (h *History) Err() error { return h.err }

// Last returns the run saved by the most recent End.
func (h *History) Last() *history.Run { return h.last }

func (h *History) Begin(enabledCount, disabledCount int) {
	h.records = make([]history.Record, 0, enabledCount)
	h.last = nil
}

func (h *History) End(executedCount, disabledCount int) {
	run := history.NewRun(h.records)
	if h.err = h.store.Save(run); h.err == nil {
		h.last = &run
	}
}

func (h *History) BeginTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
}

func (h *History) SkipDisabledTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
}

func (h *History) EndTest(fixtureName, testName string, parameters params.Parameters, res result.Result) {
	h.records = append(h.records, history.Record{
		Fixture:             fixtureName,
		Name:                testName,
		Parameters:          parameters.String(),
		Runs:                res.Runs(),
		Iterations:          res.Iterations(),
		TotalNs:             res.TimeTotal(),
		MinNs:               res.RunTimeMinimum(),
		MaxNs:               res.RunTimeMaximum(),
		RunsPerSecond:       finite(res.RunsPerSecondAverage()),
		IterationsPerSecond: finite(res.IterationsPerSecondAverage()),
	})
}
