package history

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(ts time.Time, fixture string) Run {
	return Run{
		ID:        uuid.New(),
		Timestamp: ts.UTC(),
		Host:      "bench-host",
		Results: []Record{{
			Fixture:             fixture,
			Name:                "Deliver",
			Parameters:          "(int speed = 10)",
			Runs:                3,
			Iterations:          10,
			TotalNs:             600000,
			MinNs:               100000,
			MaxNs:               300000,
			RunsPerSecond:       5000,
			IterationsPerSecond: 50000,
		}},
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, runs)

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	second := sampleRun(base.Add(time.Hour), "Second")
	first := sampleRun(base, "First")
	require.NoError(t, store.Save(second))
	require.NoError(t, store.Save(first))

	runs, err = store.LoadAll()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.ID, runs[0].ID)
	assert.Equal(t, second.ID, runs[1].ID)

	latest, err = store.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second, *latest)

	assert.ErrorIs(t, store.Save(first), ErrDuplicateRun)
	assert.NoFileExists(t, path+".tmp")
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = store.LoadAll()
	assert.ErrorContains(t, err, "corrupt history file")
	assert.Error(t, store.Save(sampleRun(time.Now(), "X")))
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	base := time.Date(2026, 3, 4, 5, 6, 7, 8, time.UTC)
	older := sampleRun(base, "Older")
	newer := sampleRun(base.Add(time.Minute), "Newer")
	require.NoError(t, store.Save(newer))
	require.NoError(t, store.Save(older))

	runs, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, older, runs[0])
	assert.Equal(t, newer, runs[1])

	latest, err = store.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newer.ID, latest.ID)
	assert.Equal(t, "Newer", latest.Results[0].Fixture)

	assert.Error(t, store.Save(older), "duplicate run id must be rejected")
}

func withMockStore(t *testing.T, fn func(*PostgresStore, sqlmock.Sqlmock)) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := &PostgresStore{db: db}
	fn(store, mock)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Mocked(t *testing.T) {
	columns := []string{"id", "created_at", "host", "results"}
	ts := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	run := sampleRun(ts, "Pg")
	resultsJSON := `[{"fixture":"Pg","name":"Deliver","runs":3,"iterations":10,"total_ns":600000,"min_ns":100000,"max_ns":300000,"runs_per_second":5000,"iterations_per_second":50000}]`

	t.Run("Save", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectExec("INSERT INTO benchmark_runs").
				WithArgs(run.ID.String(), run.Timestamp, run.Host, sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(1, 1))

			assert.NoError(t, store.Save(run))
		})
	})

	t.Run("Save Error", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectExec("INSERT INTO benchmark_runs").
				WillReturnError(errors.New("insert error"))

			assert.Error(t, store.Save(run))
		})
	})

	t.Run("LoadAll", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			rows := sqlmock.NewRows(columns).
				AddRow(run.ID.String(), ts, "bench-host", resultsJSON)
			mock.ExpectQuery(regexp.QuoteMeta("SELECT id, created_at, host, results FROM benchmark_runs ORDER BY created_at ASC")).
				WillReturnRows(rows)

			runs, err := store.LoadAll()
			require.NoError(t, err)
			require.Len(t, runs, 1)
			assert.Equal(t, run.ID, runs[0].ID)
			assert.Equal(t, ts, runs[0].Timestamp)
			require.Len(t, runs[0].Results, 1)
			assert.Equal(t, 5000.0, runs[0].Results[0].RunsPerSecond)
		})
	})

	t.Run("LoadLatest Empty", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectQuery("ORDER BY created_at DESC LIMIT 1").
				WillReturnRows(sqlmock.NewRows(columns))

			latest, err := store.LoadLatest()
			assert.NoError(t, err)
			assert.Nil(t, latest)
		})
	})

	t.Run("LoadLatest Bad ID", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectQuery("ORDER BY created_at DESC LIMIT 1").
				WillReturnRows(sqlmock.NewRows(columns).AddRow("not-a-uuid", ts, "", "[]"))

			_, err := store.LoadLatest()
			assert.Error(t, err)
		})
	})

	t.Run("Query Error", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectQuery("SELECT id").WillReturnError(errors.New("query error"))

			_, err := store.LoadAll()
			assert.Error(t, err)
		})
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(filepath.Join(dir, "runs.JSON"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)
	require.NoError(t, store.Close())

	store, err = Open(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Close())

	t.Chdir(dir)
	store, err = Open("")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Close())
	assert.FileExists(t, filepath.Join(dir, DefaultSQLitePath))
}

func TestNewRun(t *testing.T) {
	run := NewRun(nil)
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.WithinDuration(t, time.Now(), run.Timestamp, time.Minute)
	assert.Equal(t, time.UTC, run.Timestamp.Location())
}
