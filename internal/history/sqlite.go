package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultSQLitePath is used when no history target is configured.
const DefaultSQLitePath = ".benchkit.db"

// SQLiteStore implements Store using SQLite. Timestamps are stored as Unix
// nanoseconds.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path and applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS benchmark_runs (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			host TEXT NOT NULL DEFAULT '',
			results TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_benchmark_runs_created ON benchmark_runs(created_at)`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts run.
func (s *SQLiteStore) Save(run Run) error {
	results, err := encodeResults(run.Results)
	if err != nil {
		return err
	}
	query := `INSERT INTO benchmark_runs (id, created_at, host, results) VALUES (?, ?, ?, ?)`
	_, err = s.db.Exec(query, run.ID.String(), run.Timestamp.UnixNano(), run.Host, results)
	return err
}

// LoadAll returns every run, oldest first.
func (s *SQLiteStore) LoadAll() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, host, results FROM benchmark_runs ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	return scanRuns(rows, unixNano)
}

// LoadLatest returns the newest run, or nil when the store is empty.
func (s *SQLiteStore) LoadLatest() (*Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, host, results FROM benchmark_runs ORDER BY created_at DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	return latest(scanRuns(rows, unixNano))
}

func unixNano(ns int64) time.Time { return time.Unix(0, ns) }
