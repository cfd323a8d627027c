// Package benchmark registers benchmark cases and executes them with a fixed
// number of timed runs, reporting lifecycle events to outputters.
package benchmark

// Test is one benchmark case. A fresh instance is created for every run:
// SetUp and TearDown are called once per run, TestBody once per iteration.
type Test interface {
	SetUp()
	TearDown()
	TestBody()
}

// Fixture provides no-op SetUp and TearDown for embedding.
type Fixture struct{}

func (Fixture) SetUp()    {}
func (Fixture) TearDown() {}

// TestFunc adapts a plain function to Test.
type TestFunc func()

func (TestFunc) SetUp()      {}
func (TestFunc) TearDown()   {}
func (f TestFunc) TestBody() { f() }

// Factory creates test instances.
type Factory interface {
	CreateTest() Test
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func() Test

func (f FactoryFunc) CreateTest() Test { return f() }

// FactoryFor returns a Factory that allocates a zero T for every run.
func FactoryFor[T any, PT interface {
	*T
	Test
}]() Factory {
	return FactoryFunc(func() Test { return PT(new(T)) })
}

// Body returns a Factory for a stateless test body.
func Body(body func()) Factory {
	return FactoryFunc(func() Test { return TestFunc(body) })
}
