package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler keeps every record it is handed.
type recordingHandler struct {
	mu      sync.Mutex
	level   slog.Level
	attrs   []slog.Attr
	groups  []string
	records []slog.Record
	err     error
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return h.err
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{level: h.level, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...), groups: h.groups}
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	return &recordingHandler{level: h.level, attrs: h.attrs, groups: append(append([]string{}, h.groups...), name)}
}

func (h *recordingHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		out = append(out, r.Message)
	}
	return out
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level(true))
	assert.Equal(t, slog.LevelInfo, Level(false))
}

func TestFanout(t *testing.T) {
	ctx := context.Background()
	debug := &recordingHandler{level: slog.LevelDebug}
	warn := &recordingHandler{level: slog.LevelWarn}
	f := fanout{debug, warn}

	assert.True(t, f.Enabled(ctx, slog.LevelDebug))
	assert.False(t, fanout{warn}.Enabled(ctx, slog.LevelInfo))

	require.NoError(t, f.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelInfo, "run started", 0)))
	require.NoError(t, f.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelError, "sink failed", 0)))

	assert.Equal(t, []string{"run started", "sink failed"}, debug.messages())
	assert.Equal(t, []string{"sink failed"}, warn.messages())
}

func TestFanout_JoinsHandlerErrors(t *testing.T) {
	boom := errors.New("boom")
	f := fanout{&recordingHandler{err: boom}, &recordingHandler{}}

	err := f.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	assert.ErrorIs(t, err, boom)
}

func TestFanout_WithAttrsAndGroup(t *testing.T) {
	f := fanout{&recordingHandler{}, &recordingHandler{}}

	withAttrs, ok := f.WithAttrs([]slog.Attr{slog.String("fixture", "Math")}).(fanout)
	require.True(t, ok)
	for _, h := range withAttrs {
		assert.Equal(t, []slog.Attr{slog.String("fixture", "Math")}, h.(*recordingHandler).attrs)
	}

	withGroup, ok := f.WithGroup("bench").(fanout)
	require.True(t, ok)
	for _, h := range withGroup {
		assert.Equal(t, []string{"bench"}, h.(*recordingHandler).groups)
	}
}

func TestFanout_Handler(t *testing.T) {
	assert.Equal(t, slog.DiscardHandler, fanout{}.handler())

	only := &recordingHandler{}
	assert.Same(t, only, fanout{only}.handler())
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewLogger(false, "", &buf)

	logger.Debug("hidden")
	logger.Info("degenerate measurement", "benchmark", "Math.Add")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"degenerate measurement\"")
	assert.Contains(t, out, "benchmark=Math.Add")
}

func TestNewLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewLogger(true, "", &buf)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.log")
	var console bytes.Buffer

	logger, closeFile := NewLogger(false, path, &console)
	logger.Info("shuffling benchmarks", "seed", 42)
	require.NoError(t, closeFile())
	require.NoError(t, closeFile(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "shuffling benchmarks", rec["msg"])
	assert.EqualValues(t, 42, rec["seed"])
	assert.Contains(t, console.String(), "shuffling benchmarks")
}

func TestNewLogger_ClosedFileStopsWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.log")
	logger, closeFile := NewLogger(false, path, nil)

	logger.Info("before")
	require.NoError(t, closeFile())
	logger.Info("after")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before")
	assert.NotContains(t, string(data), "after")
}

func TestNewLogger_FileError(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "bench.log")

	logger, closeFile := NewLogger(false, path, &console)
	require.NotNil(t, logger)
	assert.Contains(t, console.String(), "log file unavailable")
	assert.NoError(t, closeFile())
}

func TestNewLogger_NoOutputs(t *testing.T) {
	logger, closeFile := NewLogger(false, "", nil)
	assert.NoError(t, closeFile())
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger, _ := InitLogger(true, "")
	assert.Same(t, logger, slog.Default())
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
