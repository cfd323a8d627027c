package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to dsn and applies migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS benchmark_runs (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			host TEXT NOT NULL DEFAULT '',
			results JSONB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_benchmark_runs_created ON benchmark_runs(created_at DESC)`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			slog.Debug("history migration step failed", "error", err)
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Save inserts run.
func (s *PostgresStore) Save(run Run) error {
	results, err := encodeResults(run.Results)
	if err != nil {
		return err
	}
	query := `INSERT INTO benchmark_runs (id, created_at, host, results) VALUES ($1, $2, $3, $4)`
	_, err = s.db.Exec(query, run.ID.String(), run.Timestamp, run.Host, results)
	return err
}

// LoadAll returns every run, oldest first.
func (s *PostgresStore) LoadAll() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, host, results FROM benchmark_runs ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	return scanRuns(rows, identity)
}

// LoadLatest returns the newest run, or nil when the store is empty.
func (s *PostgresStore) LoadLatest() (*Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, host, results FROM benchmark_runs ORDER BY created_at DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	return latest(scanRuns(rows, identity))
}

func identity(t time.Time) time.Time { return t }
