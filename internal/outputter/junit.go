package outputter

import (
	"encoding/xml"
	"fmt"
	"io"

	"benchkit/internal/params"
	"benchkit/internal/result"
)

type junitSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Name     string       `xml:"name,attr"`
	Tests    int          `xml:"tests,attr"`
	Skipped  int          `xml:"skipped,attr"`
	Time     float64      `xml:"time,attr"`
	Suites   []junitSuite `xml:"testsuite"`
	suiteIdx map[string]int
}

type junitSuite struct {
	Name    string      `xml:"name,attr"`
	Tests   int         `xml:"tests,attr"`
	Skipped int         `xml:"skipped,attr"`
	Time    float64     `xml:"time,attr"`
	Cases   []junitCase `xml:"testcase"`
}

type junitCase struct {
	ClassName  string        `xml:"classname,attr"`
	Name       string        `xml:"name,attr"`
	Time       float64       `xml:"time,attr"`
	Skipped    *junitSkipped `xml:"skipped,omitempty"`
	Properties []junitProp   `xml:"properties>property,omitempty"`
}

type junitSkipped struct {
	Message string `xml:"message,attr"`
}

type junitProp struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// JUnit renders a JUnit XML report, one testsuite per fixture. Times are in
// seconds.
type JUnit struct {
	w      io.Writer
	suites junitSuites
	err    error
}

// NewJUnit creates a JUnit XML renderer writing to w at End.
func NewJUnit(w io.Writer) *JUnit {
	return &JUnit{w: w}
}

// Err returns the encoding error, if any.
func (j *JUnit) Err() error { return j.err }

func (j *JUnit) Begin(enabledCount, disabledCount int) {
	j.suites = junitSuites{Name: "benchkit", suiteIdx: make(map[string]int)}
}

func (j *JUnit) End(executedCount, disabledCount int) {
	if _, err := io.WriteString(j.w, xml.Header); err != nil {
		j.err = err
		return
	}
	enc := xml.NewEncoder(j.w)
	enc.Indent("", "  ")
	if err := enc.Encode(j.suites); err != nil {
		j.err = err
		return
	}
	_, j.err = io.WriteString(j.w, "\n")
}

func (j *JUnit) BeginTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {}

func (j *JUnit) SkipDisabledTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
	s := j.suite(fixtureName)
	s.Tests++
	s.Skipped++
	j.suites.Tests++
	j.suites.Skipped++
	s.Cases = append(s.Cases, junitCase{
		ClassName: fixtureName,
		Name:      testName + parameters.String(),
		Skipped:   &junitSkipped{Message: "disabled"},
	})
}

func (j *JUnit) EndTest(fixtureName, testName string, parameters params.Parameters, res result.Result) {
	seconds := res.TimeTotal() / 1e9
	s := j.suite(fixtureName)
	s.Tests++
	s.Time += seconds
	j.suites.Tests++
	j.suites.Time += seconds
	s.Cases = append(s.Cases, junitCase{
		ClassName: fixtureName,
		Name:      testName + parameters.String(),
		Time:      seconds,
		Properties: []junitProp{
			{Name: "runs", Value: fmt.Sprint(res.Runs())},
			{Name: "iterations", Value: fmt.Sprint(res.Iterations())},
			{Name: "run_time_average_us", Value: fmt.Sprintf("%.3f", res.RunTimeAverage()/1e3)},
			{Name: "runs_per_second_average", Value: fmt.Sprintf("%.5f", res.RunsPerSecondAverage())},
			{Name: "iterations_per_second_average", Value: fmt.Sprintf("%.5f", res.IterationsPerSecondAverage())},
		},
	})
}

func (j *JUnit) suite(fixtureName string) *junitSuite {
	i, ok := j.suites.suiteIdx[fixtureName]
	if !ok {
		i = len(j.suites.Suites)
		j.suites.Suites = append(j.suites.Suites, junitSuite{Name: fixtureName})
		j.suites.suiteIdx[fixtureName] = i
	}
	return &j.suites.Suites[i]
}
