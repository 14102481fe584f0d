package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/era/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite store that lives for the test.
// It has a single connection, so concurrent callers serialize.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewFileTestDB opens a migrated SQLite file under t.TempDir. Every pooled
// connection sees the same WAL-mode database, which concurrency tests need.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "era_test.db"))
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test store %s: %v", path, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewTestUoW wraps conn in the production unit of work.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewUnitOfWork(conn)
}
