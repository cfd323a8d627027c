package benchmark

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"benchkit/internal/clock"
	"benchkit/internal/glob"
	"benchkit/internal/outputter"
	"benchkit/internal/params"
)

// Registry owns registered benchmarks, the attached outputters and the include
// filters. It is meant to be driven from a single goroutine; the mutex only
// keeps its state consistent under misuse.
type Registry struct {
	mu         sync.Mutex
	tests      []*Descriptor
	outputters []attached
	nextID     int
	includes   []string
	started    bool

	clock            clock.Clock
	defaultOutputter outputter.Outputter
	logger           *slog.Logger
}

type attached struct {
	id int
	o  outputter.Outputter
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces the monotonic clock, typically with a clock.Fake.
func WithClock(c clock.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithDefaultOutputter sets the sink used when no outputter is attached.
func WithDefaultOutputter(o outputter.Outputter) Option {
	return func(r *Registry) { r.defaultOutputter = o }
}

// WithLogger sets the logger for engine diagnostics. The default is
// slog.Default at the time of logging.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{clock: clock.Monotonic{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// RegisterTest appends a benchmark. A test name starting with DisabledPrefix
// is stored without it and marked disabled. The returned Descriptor is a copy;
// the registry keeps the record it runs.
func (r *Registry) RegisterTest(fixtureName, testName string, runs, iterations int, factory Factory, parameters params.Parameters) (Descriptor, error) {
	d, err := newDescriptor(fixtureName, testName, runs, iterations, factory, parameters)
	if err != nil {
		return Descriptor{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return Descriptor{}, fmt.Errorf("register %s: %w", d.CanonicalName(), ErrRegistryRunning)
	}
	r.tests = append(r.tests, d)
	r.log().Debug("registered benchmark", "name", d.DisplayName(), "runs", runs, "iterations", iterations, "disabled", d.Disabled)
	return d.view(), nil
}

// RegisterParameterized parses declarations and values with params.Parse and
// registers the test with the result.
func (r *Registry) RegisterParameterized(fixtureName, testName string, runs, iterations int, factory Factory, declarations, values string) (Descriptor, error) {
	return r.RegisterTest(fixtureName, testName, runs, iterations, factory, params.Parse(declarations, values))
}

// MustRegister is RegisterTest for package initialisation; it panics on error.
func (r *Registry) MustRegister(fixtureName, testName string, runs, iterations int, factory Factory, parameters params.Parameters) Descriptor {
	d, err := r.RegisterTest(fixtureName, testName, runs, iterations, factory, parameters)
	if err != nil {
		panic(err)
	}
	return d
}

// AddOutputter attaches o after the outputters already attached. The caller
// keeps ownership; the returned func detaches it again.
func (r *Registry) AddOutputter(o outputter.Outputter) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.outputters = append(r.outputters, attached{id: id, o: o})

	var once sync.Once
	return func() {
		once.Do(func() { r.removeOutputter(id) })
	}
}

func (r *Registry) removeOutputter(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.outputters {
		if a.id == id {
			r.outputters = append(r.outputters[:i], r.outputters[i+1:]...)
			return
		}
	}
}

// AddIncludeFilter adds a substring; once any is set, RunAllTests only runs
// tests whose DisplayName contains at least one of them.
func (r *Registry) AddIncludeFilter(substring string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.includes = append(r.includes, substring)
}

func (r *Registry) included(d *Descriptor, includes []string) bool {
	if len(includes) == 0 {
		return true
	}
	name := d.DisplayName()
	for _, s := range includes {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// ApplyPatternFilter removes every test whose canonical name is not selected
// by pattern (see glob.ParseFilter) and releases its factory. It cannot be
// undone.
func (r *Registry) ApplyPatternFilter(pattern string) error {
	filter, err := glob.ParseFilter(pattern)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.tests[:0]
	var errs []error
	for _, d := range r.tests {
		if filter.Includes(d.CanonicalName()) {
			kept = append(kept, d)
			continue
		}
		r.log().Debug("filtered out benchmark", "name", d.CanonicalName(), "filter", filter.String())
		if err := d.release(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", d.CanonicalName(), err))
		}
	}
	clear(r.tests[len(kept):])
	r.tests = kept
	return errors.Join(errs...)
}

// ShuffleTests randomises the test order uniformly using rng, or the global
// source when rng is nil.
func (r *Registry) ShuffleTests(rng *rand.Rand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	swap := func(i, j int) { r.tests[i], r.tests[j] = r.tests[j], r.tests[i] }
	if rng == nil {
		rand.Shuffle(len(r.tests), swap)
		return
	}
	rng.Shuffle(len(r.tests), swap)
}

// ListTests returns copies of the registered tests in current order.
func (r *Registry) ListTests() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Descriptor, len(r.tests))
	for i, d := range r.tests {
		out[i] = d.view()
	}
	return out
}

// Reset releases every registered test and clears the include filters so that
// registration is possible again. Attached outputters are kept.
func (r *Registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, d := range r.tests {
		if err := d.release(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", d.CanonicalName(), err))
		}
	}
	r.tests = nil
	r.includes = nil
	r.started = false
	return errors.Join(errs...)
}

func (r *Registry) fallbackOutputter() outputter.Outputter {
	if r.defaultOutputter == nil {
		r.defaultOutputter = outputter.NewConsole(os.Stdout, true)
	}
	return r.defaultOutputter
}
