package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/era/internal/db"
	"github.com/alexanderramin/era/internal/domain"
)

const sessionColumns = `id, started_at, ended_at, duration_sec`

// SQLSessionRepo implements SessionRepo for SQLite and Postgres.
type SQLSessionRepo struct {
	db db.DBTX
}

func NewSessionRepo(conn db.DBTX, dialect db.Dialect) *SQLSessionRepo {
	return &SQLSessionRepo{db: db.Bind(conn, dialect)}
}

// NewSQLiteSessionRepo creates a session repo over a SQLite connection.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLSessionRepo {
	return NewSessionRepo(conn, db.SQLite)
}

func (r *SQLSessionRepo) Create(ctx context.Context, s *domain.SessionRecord) error {
	if err := s.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO breathing_sessions (id, started_at, ended_at, duration_sec, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		formatTime(s.StartedAt),
		nullableTimeToString(s.EndedAt),
		nullableFloatToValue(s.DurationSec),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting breathing session: %w", err)
	}
	return nil
}

func (r *SQLSessionRepo) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM breathing_sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s domain.SessionRecord
	var startedAt string
	var endedAt sql.NullString
	var dur sql.NullFloat64
	if err := row.Scan(&s.ID, &startedAt, &endedAt, &dur); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("breathing session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning breathing session: %w", err)
	}
	return populateSession(&s, startedAt, endedAt, dur)
}

func (r *SQLSessionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM breathing_sessions
		WHERE started_at >= ? AND started_at < ?
		ORDER BY started_at`
	return r.query(ctx, "listing sessions between", query, formatTime(from), formatTime(to))
}

func (r *SQLSessionRepo) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM breathing_sessions WHERE started_at >= ? AND started_at < ?`
	return r.count(ctx, "counting sessions between", query, formatTime(from), formatTime(to))
}

func (r *SQLSessionRepo) CountTouching(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM breathing_sessions
		WHERE (started_at >= ? AND started_at < ?)
		   OR (ended_at IS NOT NULL AND ended_at >= ? AND ended_at < ?)`
	f, t := formatTime(from), formatTime(to)
	return r.count(ctx, "counting sessions touching range", query, f, t, f, t)
}

func (r *SQLSessionRepo) ListSince(ctx context.Context, from *time.Time) ([]*domain.SessionRecord, error) {
	if from == nil {
		query := `SELECT ` + sessionColumns + ` FROM breathing_sessions ORDER BY started_at`
		return r.query(ctx, "listing all sessions", query)
	}
	query := `SELECT ` + sessionColumns + ` FROM breathing_sessions
		WHERE started_at >= ?
		ORDER BY started_at`
	return r.query(ctx, "listing sessions since", query, formatTime(*from))
}

func (r *SQLSessionRepo) ListRecent(ctx context.Context, limit int) ([]*domain.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM breathing_sessions
		ORDER BY started_at DESC
		LIMIT ?`
	return r.query(ctx, "listing recent sessions", query, limit)
}

func (r *SQLSessionRepo) CountCompleted(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM breathing_sessions WHERE ended_at IS NOT NULL`
	return r.count(ctx, "counting completed sessions", query)
}

func (r *SQLSessionRepo) query(ctx context.Context, op, query string, args ...any) ([]*domain.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func (r *SQLSessionRepo) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// scanSessions scans multiple sessions from *sql.Rows.
func scanSessions(rows *sql.Rows) ([]*domain.SessionRecord, error) {
	var sessions []*domain.SessionRecord
	for rows.Next() {
		var s domain.SessionRecord
		var startedAt string
		var endedAt sql.NullString
		var dur sql.NullFloat64
		if err := rows.Scan(&s.ID, &startedAt, &endedAt, &dur); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		session, err := populateSession(&s, startedAt, endedAt, dur)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields after scanning raw columns.
func populateSession(s *domain.SessionRecord, startedAt string, endedAt sql.NullString, dur sql.NullFloat64) (*domain.SessionRecord, error) {
	var err error
	s.StartedAt, err = parseTime(startedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	s.EndedAt = parseNullableTime(endedAt)
	s.DurationSec = parseNullableFloat(dur)
	return s, nil
}
