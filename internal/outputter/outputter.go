// Package outputter renders benchmark lifecycle notifications into report
// formats: a coloured console layout, JSON, YAML, JUnit XML, Prometheus
// metrics and the persistent result history.
package outputter

import (
	"benchkit/internal/params"
	"benchkit/internal/result"
)

// Outputter receives lifecycle notifications from the benchmark engine.
// Calls arrive synchronously and in a fixed order: Begin, then per test
// either SkipDisabledTest or BeginTest followed by EndTest, then End.
type Outputter interface {
	Begin(enabledCount, disabledCount int)
	End(executedCount, disabledCount int)
	BeginTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int)
	SkipDisabledTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int)
	EndTest(fixtureName, testName string, parameters params.Parameters, res result.Result)
}

// Multi forwards every notification to each outputter in order.
type Multi []Outputter

func (m Multi) Begin(enabledCount, disabledCount int) {
	for _, o := range m {
		o.Begin(enabledCount, disabledCount)
	}
}

func (m Multi) End(executedCount, disabledCount int) {
	for _, o := range m {
		o.End(executedCount, disabledCount)
	}
}

func (m Multi) BeginTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
	for _, o := range m {
		o.BeginTest(fixtureName, testName, parameters, runsCount, iterationsCount)
	}
}

func (m Multi) SkipDisabledTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
	for _, o := range m {
		o.SkipDisabledTest(fixtureName, testName, parameters, runsCount, iterationsCount)
	}
}

func (m Multi) EndTest(fixtureName, testName string, parameters params.Parameters, res result.Result) {
	for _, o := range m {
		o.EndTest(fixtureName, testName, parameters, res)
	}
}

// Errer is implemented by outputters that can fail while writing.
type Errer interface {
	Err() error
}

// FormatName renders "Fixture.Test(type name = value, ...)".
func FormatName(fixtureName, testName string, parameters params.Parameters) string {
	return fixtureName + "." + testName + parameters.String()
}
