package testutil

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"

	"github.com/alexanderramin/era/internal/db"
)

// ErrInjected is returned by FailOnNthExecUoW when Err is unset.
var ErrInjected = errors.New("injected write failure")

// FailOnNthExecUoW runs the production unit of work but fails the FailOn-th
// ExecContext inside each transaction, counting from 1. Reads pass through.
// Reminder replacement (one delete then one insert per slot) uses it to
// break halfway and check that nothing was committed.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	injected := u.Err
	if injected == nil {
		injected = ErrInjected
	}
	return db.NewUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: injected})
	})
}

type failOnNthExec struct {
	db.DBTX
	execs  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.execs.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
