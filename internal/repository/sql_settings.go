package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/era/internal/db"
)

// SQLSettingsRepo stores named integer settings.
type SQLSettingsRepo struct {
	db db.DBTX
}

func NewSettingsRepo(conn db.DBTX, dialect db.Dialect) *SQLSettingsRepo {
	return &SQLSettingsRepo{db: db.Bind(conn, dialect)}
}

func NewSQLiteSettingsRepo(conn db.DBTX) *SQLSettingsRepo {
	return NewSettingsRepo(conn, db.SQLite)
}

func (r *SQLSettingsRepo) GetInt(ctx context.Context, key string) (int, error) {
	query := `SELECT int_value FROM settings WHERE key = ?`
	var v int
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("setting %s: %w", key, ErrNotFound)
		}
		return 0, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return v, nil
}

func (r *SQLSettingsRepo) SetInt(ctx context.Context, key string, value int) error {
	query := `INSERT INTO settings (key, int_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET int_value = excluded.int_value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}
