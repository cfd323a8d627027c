package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"benchkit/internal/benchmark"
	"benchkit/internal/clock"

	"github.com/spf13/viper"
)

// newTestRegistry builds a small registry timed by a fake clock.
func newTestRegistry() (*benchmark.Registry, error) {
	reg := benchmark.NewRegistry(
		benchmark.WithClock(clock.NewFake(time.Microsecond)),
		benchmark.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	noop := benchmark.Body(func() {})
	if _, err := reg.RegisterTest("Math", "Add", 3, 10, noop, nil); err != nil {
		return nil, err
	}
	if _, err := reg.RegisterTest("Math", "DISABLED_Sub", 3, 10, noop, nil); err != nil {
		return nil, err
	}
	for _, n := range []int{1, 2, 3} {
		if _, err := reg.RegisterParameterized("Str", "Concat", 2, 5, noop, "(int n)", fmt.Sprintf("(%d)", n)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// executeCommand runs a fresh root command against a fresh test registry and
// returns what it wrote to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	oldRegistry := registry
	registry = newTestRegistry
	t.Cleanup(func() { registry = oldRegistry })

	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	t.Cleanup(func() { exit = oldExit })

	oldLogger := slog.Default()
	t.Cleanup(func() {
		closeLogger()
		closeLogger = func() error { return nil }
		slog.SetDefault(oldLogger)
	})

	root := newRootCmd()
	root.SetArgs(args)
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(bytes.NewBufferString(""))
	err := root.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
