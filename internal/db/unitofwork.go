package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// UnitOfWork runs a callback inside one transaction. The callback receives a
// tx-backed DBTX and must not touch the parent *sql.DB: in-memory databases
// have a single connection and would deadlock.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork with database/sql transactions. A
// transaction that fails because another process holds the write lock is
// rerun from the start, up to a bounded number of attempts.
type SQLiteUnitOfWork struct {
	db       *sql.DB
	attempts int
	backoff  time.Duration
	isBusy   func(error) bool
}

// UnitOfWorkOption configures a SQLiteUnitOfWork.
type UnitOfWorkOption func(*SQLiteUnitOfWork)

// WithBusyRetry sets how often a locked transaction is attempted in total and
// the pause between attempts.
func WithBusyRetry(attempts int, backoff time.Duration) UnitOfWorkOption {
	return func(u *SQLiteUnitOfWork) {
		if attempts > 0 {
			u.attempts = attempts
		}
		u.backoff = backoff
	}
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by db.
func NewSQLiteUnitOfWork(db *sql.DB, opts ...UnitOfWorkOption) *SQLiteUnitOfWork {
	u := &SQLiteUnitOfWork{
		db:       db,
		attempts: 3,
		backoff:  50 * time.Millisecond,
		isBusy:   IsBusy,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	var err error
	for attempt := 1; attempt <= u.attempts; attempt++ {
		err = u.once(ctx, fn)
		if err == nil || !u.isBusy(err) || attempt == u.attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(u.backoff * time.Duration(attempt)):
		}
	}
	return err
}

func (u *SQLiteUnitOfWork) once(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// IsBusy reports whether err is SQLite refusing a lock held by another
// connection (SQLITE_BUSY or SQLITE_LOCKED, any extended code).
func IsBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}
