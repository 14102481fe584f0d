package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialect_Rebind(t *testing.T) {
	q := `SELECT id FROM t WHERE a >= ? AND b < ? AND c = '?'`

	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, `SELECT id FROM t WHERE a >= $1 AND b < $2 AND c = '?'`, Postgres.Rebind(q))
}

func TestDialect_String(t *testing.T) {
	assert.Equal(t, "sqlite", SQLite.String())
	assert.Equal(t, "postgres", Postgres.String())
}

type queryLog struct {
	DBTX
	queries []string
}

func (q *queryLog) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	q.queries = append(q.queries, query)
	return nil, nil
}

func TestBind(t *testing.T) {
	log := &queryLog{}

	assert.Same(t, log, Bind(log, SQLite))

	pg := Bind(log, Postgres)
	assert.Equal(t, pg, Bind(pg, Postgres), "binding twice does not double wrap")

	_, err := pg.ExecContext(context.Background(), `DELETE FROM reminders WHERE hour = ? AND minute = ?`, 8, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{`DELETE FROM reminders WHERE hour = $1 AND minute = $2`}, log.queries)
}
