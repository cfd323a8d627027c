package outputter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"benchkit/internal/history"
)

// DefaultPushJob is the Pushgateway job name used when none is configured.
const DefaultPushJob = "benchkit"

// UsageError reports a malformed output specification.
type UsageError struct {
	Spec   string
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid output %q: %s", e.Spec, e.Reason)
}

// SinkOpenError reports a sink target that could not be opened. The sink
// returned alongside it writes to stdout instead.
type SinkOpenError struct {
	Spec string
	Err  error
}

func (e *SinkOpenError) Error() string {
	return fmt.Sprintf("cannot open output %q, falling back to stdout: %v", e.Spec, e.Err)
}

func (e *SinkOpenError) Unwrap() error { return e.Err }

// Options configure Open.
type Options struct {
	// Color enables console styling for sinks writing to stdout.
	Color bool
	// PushJob is the Pushgateway job name.
	PushJob string
	Logger  *slog.Logger
}

// Sink is an opened output target.
type Sink struct {
	Outputter
	Format string
	Target string
	closer io.Closer
}

// Err reports the first rendering error of the wrapped outputter.
func (s *Sink) Err() error {
	if e, ok := s.Outputter.(Errer); ok {
		return e.Err()
	}
	return nil
}

// Close releases the file or store behind the sink.
func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// Open parses spec as <format>[:<target>] and opens the sink. Formats are
// console, json, yaml, junit, html, prometheus:<path>, pushgateway:<url> and
// history[:<store>]. Without a target the file formats write to stdout.
//
// A target that cannot be opened yields a working stdout sink together with a
// *SinkOpenError. A malformed spec yields a *UsageError and no sink.
func Open(spec string, stdout io.Writer, opts Options) (*Sink, error) {
	format, target, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var newFile func(w io.Writer, color bool) Outputter
	switch format {
	case "console":
		newFile = func(w io.Writer, color bool) Outputter { return NewConsole(w, color) }
	case "json":
		newFile = func(w io.Writer, _ bool) Outputter { return NewJSON(w) }
	case "yaml":
		newFile = func(w io.Writer, _ bool) Outputter { return NewYAML(w) }
	case "junit":
		newFile = func(w io.Writer, _ bool) Outputter { return NewJUnit(w) }
	case "html":
		newFile = func(w io.Writer, _ bool) Outputter { return NewHTML(w) }
	case "prometheus":
		return &Sink{Outputter: NewPrometheusTextfile(target), Format: format, Target: target}, nil
	case "pushgateway":
		job := opts.PushJob
		if job == "" {
			job = DefaultPushJob
		}
		return &Sink{Outputter: NewPushgateway(target, job), Format: format, Target: target}, nil
	case "history":
		store, err := history.Open(target)
		if err != nil {
			logger.Warn("history store unavailable, writing results to stdout", "target", target, "error", err)
			return &Sink{Outputter: NewJSON(stdout), Format: format}, &SinkOpenError{Spec: spec, Err: err}
		}
		return &Sink{Outputter: NewHistory(store), Format: format, Target: target, closer: store}, nil
	}

	if target == "" {
		return &Sink{Outputter: newFile(stdout, opts.Color), Format: format}, nil
	}
	f, err := os.Create(target)
	if err != nil {
		logger.Warn("output file unavailable, writing to stdout", "format", format, "path", target, "error", err)
		return &Sink{Outputter: newFile(stdout, opts.Color), Format: format},
			&SinkOpenError{Spec: spec, Err: err}
	}
	return &Sink{Outputter: newFile(f, false), Format: format, Target: target, closer: f}, nil
}

// Formats lists the accepted output formats.
var Formats = []string{"console", "json", "yaml", "junit", "html", "prometheus", "pushgateway", "history"}

// ParseSpec splits spec into a lower-cased format and its target and checks
// both without opening anything.
func ParseSpec(spec string) (format, target string, err error) {
	format, target, _ = strings.Cut(spec, ":")
	format = strings.ToLower(strings.TrimSpace(format))
	switch {
	case format == "":
		return "", "", &UsageError{Spec: spec, Reason: "missing format"}
	case !slices.Contains(Formats, format):
		return "", "", &UsageError{Spec: spec, Reason: "unknown format " + format}
	case format == "prometheus" && target == "":
		return "", "", &UsageError{Spec: spec, Reason: "prometheus requires a textfile path"}
	case format == "pushgateway" && target == "":
		return "", "", &UsageError{Spec: spec, Reason: "pushgateway requires a URL"}
	}
	return format, target, nil
}

// OpenAll opens every spec. Usage errors abort immediately after closing the
// sinks opened so far; sink open errors are joined and returned with the
// fallback sinks.
func OpenAll(specs []string, stdout io.Writer, opts Options) ([]*Sink, error) {
	sinks := make([]*Sink, 0, len(specs))
	var openErrs []error
	for _, spec := range specs {
		s, err := Open(spec, stdout, opts)
		var usage *UsageError
		if errors.As(err, &usage) {
			CloseAll(sinks)
			return nil, err
		}
		if err != nil {
			openErrs = append(openErrs, err)
		}
		sinks = append(sinks, s)
	}
	return sinks, errors.Join(openErrs...)
}

// CloseAll closes every sink and returns the joined errors.
func CloseAll(sinks []*Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
