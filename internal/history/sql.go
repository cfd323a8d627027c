package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Runs are stored one row each; results are kept as a JSON document.

func encodeResults(results []Record) (string, error) {
	if results == nil {
		results = []Record{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(data), nil
}

func decodeRun(id string, ts time.Time, host, results string) (Run, error) {
	run := Run{Timestamp: ts.UTC(), Host: host}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	run.ID = parsed
	if err := json.Unmarshal([]byte(results), &run.Results); err != nil {
		return Run{}, fmt.Errorf("failed to unmarshal results of run %s: %w", id, err)
	}
	return run, nil
}

// scanRuns reads (id, created_at, host, results) rows. created_at is
// converted by toTime so each dialect can choose its own column type.
func scanRuns[T any](rows *sql.Rows, toTime func(T) time.Time) ([]Run, error) {
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			id, host, results string
			created           T
		)
		if err := rows.Scan(&id, &created, &host, &results); err != nil {
			return nil, err
		}
		run, err := decodeRun(id, toTime(created), host, results)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func latest(runs []Run, err error) (*Run, error) {
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}
