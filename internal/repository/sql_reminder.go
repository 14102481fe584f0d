package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/era/internal/db"
	"github.com/alexanderramin/era/internal/domain"
)

// SQLReminderRepo stores daily reminder slots.
type SQLReminderRepo struct {
	db db.DBTX
}

func NewReminderRepo(conn db.DBTX, dialect db.Dialect) *SQLReminderRepo {
	return &SQLReminderRepo{db: db.Bind(conn, dialect)}
}

func NewSQLiteReminderRepo(conn db.DBTX) *SQLReminderRepo {
	return NewReminderRepo(conn, db.SQLite)
}

func (r *SQLReminderRepo) List(ctx context.Context) ([]domain.Reminder, error) {
	query := `SELECT hour, minute FROM reminders ORDER BY hour, minute`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()

	var out []domain.Reminder
	for rows.Next() {
		var rem domain.Reminder
		if err := rows.Scan(&rem.Hour, &rem.Minute); err != nil {
			return nil, fmt.Errorf("scanning reminder row: %w", err)
		}
		out = append(out, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminders: %w", err)
	}
	return out, nil
}

// ReplaceAll deletes every slot and inserts the given ones. Callers wanting
// atomicity run it on a transaction-scoped repo.
func (r *SQLReminderRepo) ReplaceAll(ctx context.Context, reminders []domain.Reminder) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reminders`); err != nil {
		return fmt.Errorf("clearing reminders: %w", err)
	}
	query := `INSERT INTO reminders (id, hour, minute, created_at) VALUES (?, ?, ?, ?)`
	now := nowUTC()
	for _, rem := range reminders {
		if _, err := r.db.ExecContext(ctx, query, rem.ID(), rem.Hour, rem.Minute, now); err != nil {
			return fmt.Errorf("inserting reminder %s: %w", rem, err)
		}
	}
	return nil
}
