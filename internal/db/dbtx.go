package db

import (
	"context"
	"database/sql"
)

// DBTX is what repositories query through: a *sql.DB, a *sql.Tx, or either
// wrapped by Bind.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
	_ DBTX = boundConn{}
)

// Bind returns conn with every query rebound for d, so callers can write
// "?" placeholders for either backend. SQLite connections pass through.
func Bind(conn DBTX, d Dialect) DBTX {
	if d != Postgres {
		return conn
	}
	if b, ok := conn.(boundConn); ok && b.dialect == d {
		return b
	}
	return boundConn{conn: conn, dialect: d}
}

type boundConn struct {
	conn    DBTX
	dialect Dialect
}

func (b boundConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return b.conn.ExecContext(ctx, b.dialect.Rebind(query), args...)
}

func (b boundConn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return b.conn.QueryContext(ctx, b.dialect.Rebind(query), args...)
}

func (b boundConn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return b.conn.QueryRowContext(ctx, b.dialect.Rebind(query), args...)
}
