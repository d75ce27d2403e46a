package testutil

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexanderramin/sprout/internal/db"
)

// ErrInjectedExec is returned by FailOnNthExecUoW when Err is unset.
var ErrInjectedExec = errors.New("injected journal write failure")

// FailOnNthExecUoW runs each unit through a real journal transaction but
// fails the FailOn-th write inside it (1-based), so a multi-row journal
// entry can be checked for all-or-nothing behavior. Reads are not counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	injected := u.Err
	if injected == nil {
		injected = ErrInjectedExec
	}
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingTx{DBTX: tx, failOn: u.FailOn, err: injected})
	})
}

// countingTx is only used from one goroutine per transaction.
type countingTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.writes++
	if c.writes == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
