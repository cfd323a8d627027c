package history

import (
	"strings"
)

// Open returns the store addressed by target: a postgres:// or
// postgresql:// DSN selects Postgres, a *.json path the JSON file store and
// anything else an SQLite database. An empty target is DefaultSQLitePath.
func Open(target string) (Store, error) {
	switch {
	case strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"):
		return NewPostgresStore(target)
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		return NewFileStore(target)
	case target == "":
		return NewSQLiteStore(DefaultSQLitePath)
	default:
		return NewSQLiteStore(target)
	}
}
