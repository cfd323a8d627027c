package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// ErrDuplicateRun is returned when a run with the same ID is already stored.
var ErrDuplicateRun = errors.New("run already recorded")

// Store persists benchmark runs.
type Store interface {
	Save(run Run) error
	// LoadLatest returns the most recent run, or nil when none is stored.
	LoadLatest() (*Run, error)
	// LoadAll returns every run, oldest first.
	LoadAll() ([]Run, error)
	Close() error
}

// FileStore keeps every run in a single JSON array. Each Save rewrites the
// file through a temporary sibling and a rename.
type FileStore struct {
	path string
}

// NewFileStore creates the parent directory of path if needed.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(run Run) error {
	runs, err := s.LoadAll()
	if err != nil {
		return err
	}
	if slices.ContainsFunc(runs, func(r Run) bool { return r.ID == run.ID }) {
		return fmt.Errorf("%w: %s", ErrDuplicateRun, run.ID)
	}

	data, err := json.MarshalIndent(append(runs, run), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) LoadAll() ([]Run, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(data) == 0) {
		return []Run{}, nil
	}
	if err != nil {
		return nil, err
	}

	var runs []Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("corrupt history file %s: %w", s.path, err)
	}
	slices.SortStableFunc(runs, func(a, b Run) int { return a.Timestamp.Compare(b.Timestamp) })
	return runs, nil
}

func (s *FileStore) LoadLatest() (*Run, error) {
	runs, err := s.LoadAll()
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[len(runs)-1], nil
}

// Close is a no-op; the file is only open during Save and LoadAll.
func (s *FileStore) Close() error { return nil }
