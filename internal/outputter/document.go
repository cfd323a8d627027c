package outputter

import (
	"encoding/json"
	"io"
	"math"

	"benchkit/internal/params"
	"benchkit/internal/result"

	"gopkg.in/yaml.v3"
)

// DocumentVersion is the format_version written by the JSON and YAML renderers.
const DocumentVersion = 1

// Document is the structured report produced by the JSON and YAML renderers.
type Document struct {
	FormatVersion int              `json:"format_version" yaml:"format_version"`
	Benchmarks    []BenchmarkEntry `json:"benchmarks" yaml:"benchmarks"`
}

// BenchmarkEntry describes one benchmark in a Document.
type BenchmarkEntry struct {
	Fixture          string            `json:"fixture" yaml:"fixture"`
	Name             string            `json:"name" yaml:"name"`
	Parameters       params.Parameters `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	IterationsPerRun int               `json:"iterations_per_run" yaml:"iterations_per_run"`
	Disabled         bool              `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Runs             []RunEntry        `json:"runs,omitempty" yaml:"runs,omitempty"`
	Stats            *Stats            `json:"stats,omitempty" yaml:"stats,omitempty"`
	// Degenerate marks results with a zero-duration run; their infinite
	// rates are written as 0.
	Degenerate bool `json:"degenerate,omitempty" yaml:"degenerate,omitempty"`
}

// RunEntry is one timed run. Duration is in milliseconds.
type RunEntry struct {
	Duration float64 `json:"duration" yaml:"duration"`
}

// Stats are the derived figures of a finished benchmark. Times are in
// microseconds.
type Stats struct {
	RunTimeAverage             float64 `json:"run_time_average_us" yaml:"run_time_average_us"`
	RunTimeMinimum             float64 `json:"run_time_minimum_us" yaml:"run_time_minimum_us"`
	RunTimeMaximum             float64 `json:"run_time_maximum_us" yaml:"run_time_maximum_us"`
	RunsPerSecondAverage       float64 `json:"runs_per_second_average" yaml:"runs_per_second_average"`
	IterationTimeAverage       float64 `json:"iteration_time_average_us" yaml:"iteration_time_average_us"`
	IterationsPerSecondAverage float64 `json:"iterations_per_second_average" yaml:"iterations_per_second_average"`
}

type encodeFunc func(w io.Writer, doc *Document) error

// documentOutputter collects entries and encodes the whole document at End.
type documentOutputter struct {
	w       io.Writer
	encode  encodeFunc
	doc     Document
	current int
	err     error
}

// NewJSON creates a renderer writing an indented JSON document to w.
func NewJSON(w io.Writer) Outputter {
	return &documentOutputter{w: w, encode: func(w io.Writer, doc *Document) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}}
}

// NewYAML creates a renderer writing a YAML document to w.
func NewYAML(w io.Writer) Outputter {
	return &documentOutputter{w: w, encode: func(w io.Writer, doc *Document) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}}
}

// Err returns the encoding error, if any.
func (d *documentOutputter) Err() error { return d.err }

func (d *documentOutputter) Begin(enabledCount, disabledCount int) {
	d.doc = Document{
		FormatVersion: DocumentVersion,
		Benchmarks:    make([]BenchmarkEntry, 0, enabledCount+disabledCount),
	}
	d.current = -1
}

func (d *documentOutputter) End(executedCount, disabledCount int) {
	d.err = d.encode(d.w, &d.doc)
}

func (d *documentOutputter) BeginTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
	d.doc.Benchmarks = append(d.doc.Benchmarks, BenchmarkEntry{
		Fixture:          fixtureName,
		Name:             testName,
		Parameters:       parameters.Clone(),
		IterationsPerRun: iterationsCount,
	})
	d.current = len(d.doc.Benchmarks) - 1
}

func (d *documentOutputter) SkipDisabledTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
	d.doc.Benchmarks = append(d.doc.Benchmarks, BenchmarkEntry{
		Fixture:          fixtureName,
		Name:             testName,
		Parameters:       parameters.Clone(),
		IterationsPerRun: iterationsCount,
		Disabled:         true,
	})
	d.current = -1
}

func (d *documentOutputter) EndTest(fixtureName, testName string, parameters params.Parameters, res result.Result) {
	if d.current < 0 {
		return
	}
	entry := &d.doc.Benchmarks[d.current]
	for _, s := range res.Samples() {
		entry.Runs = append(entry.Runs, RunEntry{Duration: float64(s) / 1e6})
	}
	entry.Stats = &Stats{
		RunTimeAverage:             res.RunTimeAverage() / 1e3,
		RunTimeMinimum:             res.RunTimeMinimum() / 1e3,
		RunTimeMaximum:             res.RunTimeMaximum() / 1e3,
		RunsPerSecondAverage:       finite(res.RunsPerSecondAverage()),
		IterationTimeAverage:       res.IterationTimeAverage() / 1e3,
		IterationsPerSecondAverage: finite(res.IterationsPerSecondAverage()),
	}
	entry.Degenerate = res.Degenerate()
	d.current = -1
}

// finite maps the infinities of degenerate results to 0; JSON has no
// representation for them.
func finite(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}
