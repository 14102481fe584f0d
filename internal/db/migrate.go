package db

import (
	"database/sql"
	"fmt"
)

// Statements must run unchanged on SQLite and Postgres. Timestamps are stored
// as fixed-width UTC text so range predicates compare lexically.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS breathing_sessions (
		id           TEXT PRIMARY KEY,
		started_at   TEXT NOT NULL,
		ended_at     TEXT,
		duration_sec DOUBLE PRECISION,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_breathing_sessions_started ON breathing_sessions(started_at)`,
	`CREATE INDEX IF NOT EXISTS idx_breathing_sessions_ended ON breathing_sessions(ended_at)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		int_value  INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reminders (
		id         TEXT PRIMARY KEY,
		hour       INTEGER NOT NULL CHECK(hour >= 0 AND hour <= 23),
		minute     INTEGER NOT NULL CHECK(minute >= 0 AND minute <= 59),
		created_at TEXT NOT NULL
	)`,
}

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB, dialect Dialect) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i, dialect, err)
		}
	}
	return nil
}
