package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UnitOfWork groups journal writes that must land together, such as an
// answer event and the level change it caused.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork runs each unit in one journal transaction.
type SQLiteUnitOfWork struct {
	conn *sql.DB
}

func NewSQLiteUnitOfWork(conn *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{conn: conn}
}

// WithinTx commits when fn returns nil. Any error or panic from fn rolls
// every write back; a failed rollback is joined onto fn's error.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := u.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("opening journal transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rolling back journal transaction: %w", rbErr))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing journal transaction: %w", err)
	}
	committed = true
	return nil
}
