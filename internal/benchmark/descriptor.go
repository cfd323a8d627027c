package benchmark

import (
	"io"
	"strings"

	"benchkit/internal/params"
)

// DisabledPrefix marks a test name as disabled. The match is case-sensitive.
const DisabledPrefix = "DISABLED_"

// Descriptor identifies one registered benchmark. Callers only ever receive
// copies; changing one does not affect the registry.
type Descriptor struct {
	FixtureName string
	TestName    string
	Runs        int
	Iterations  int
	Parameters  params.Parameters
	Disabled    bool

	factory Factory
}

func newDescriptor(fixtureName, testName string, runs, iterations int, factory Factory, parameters params.Parameters) (*Descriptor, error) {
	d := &Descriptor{
		FixtureName: fixtureName,
		TestName:    testName,
		Runs:        runs,
		Iterations:  iterations,
		Parameters:  parameters.Clone(),
		factory:     factory,
	}
	if name, ok := strings.CutPrefix(testName, DisabledPrefix); ok {
		d.TestName = name
		d.Disabled = true
	}

	reject := func(reason string) (*Descriptor, error) {
		return nil, &ConfigurationError{Fixture: fixtureName, Test: testName, Reason: reason}
	}
	switch {
	case fixtureName == "":
		return reject("empty fixture name")
	case d.TestName == "":
		return reject("empty test name")
	case factory == nil:
		return reject("nil factory")
	case runs < 1:
		return reject("runs must be at least 1")
	case iterations < 1:
		return reject("iterations must be at least 1")
	}
	return d, nil
}

// CanonicalName is "Fixture.Test", the name pattern filters match against.
func (d Descriptor) CanonicalName() string {
	return d.FixtureName + "." + d.TestName
}

// DisplayName is the canonical name followed by the parameter list, the
// string include filters search.
func (d Descriptor) DisplayName() string {
	return d.CanonicalName() + d.Parameters.String()
}

// view returns a copy that cannot create instances.
func (d *Descriptor) view() Descriptor {
	v := *d
	v.Parameters = d.Parameters.Clone()
	v.factory = nil
	return v
}

// release disposes the factory.
func (d *Descriptor) release() error {
	f := d.factory
	d.factory = nil
	if c, ok := f.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
