package history

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// Record is the persisted summary of one benchmark.
type Record struct {
	Fixture             string  `json:"fixture"`
	Name                string  `json:"name"`
	Parameters          string  `json:"parameters,omitempty"`
	Runs                int     `json:"runs"`
	Iterations          int     `json:"iterations"`
	TotalNs             float64 `json:"total_ns"`
	MinNs               float64 `json:"min_ns"`
	MaxNs               float64 `json:"max_ns"`
	RunsPerSecond       float64 `json:"runs_per_second"`
	IterationsPerSecond float64 `json:"iterations_per_second"`
}

// Run is one benchmarking session.
type Run struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Host      string    `json:"host,omitempty"`
	Results   []Record  `json:"results"`
}

// NewRun stamps results with a fresh ID, the current time and the host name.
func NewRun(results []Record) Run {
	host, _ := os.Hostname()
	return Run{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Host:      host,
		Results:   results,
	}
}
