// Package telemetry sets up the process logger. Diagnostics go to stderr
// so that stdout carries only benchmark reports.
package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Level maps the verbose switch to the minimum record level.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger builds a logger that writes text records to console and, when
// logFile is set, JSON records appended to that file. A nil console drops
// console output. A log file that cannot be opened is reported through the
// returned logger and skipped.
//
// The returned func closes the log file; it is safe to call more than once
// and does nothing when no file was opened.
func NewLogger(verbose bool, logFile string, console io.Writer) (*slog.Logger, func() error) {
	opts := &slog.HandlerOptions{Level: Level(verbose)}
	closeFile := func() error { return nil }

	var sinks fanout
	if console != nil {
		sinks = append(sinks, slog.NewTextHandler(console, opts))
	}

	var openErr error
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			openErr = err
		} else {
			sinks = append(sinks, slog.NewJSONHandler(f, opts))
			closeFile = sync.OnceValue(f.Close)
		}
	}

	logger := slog.New(sinks.handler())
	if openErr != nil {
		logger.Warn("log file unavailable", "path", logFile, "error", openErr)
	}
	return logger, closeFile
}

// InitLogger builds the stderr logger and installs it as the slog default.
// The returned func closes the log file.
func InitLogger(verbose bool, logFile string) (*slog.Logger, func() error) {
	logger, closeFile := NewLogger(verbose, logFile, os.Stderr)
	slog.SetDefault(logger)
	return logger, closeFile
}

// fanout duplicates each record to every handler enabled for its level.
type fanout []slog.Handler

func (f fanout) handler() slog.Handler {
	switch len(f) {
	case 0:
		return slog.DiscardHandler
	case 1:
		return f[0]
	}
	return f
}

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanout) each(fn func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}
