package testutil

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/tandem/internal/db"
)

// KeyWriteFailingUoW runs transactions through Inner and fails every write
// whose key argument starts with KeyPrefix. An empty prefix fails all writes.
// Reads pass through, so the store's read half of a read-modify-write runs
// normally and the rollback path is exercised.
type KeyWriteFailingUoW struct {
	Inner     db.UnitOfWork
	KeyPrefix string
	Err       error

	writes atomic.Int32
}

// NewKeyWriteFailingUoW wraps a fresh SQLite unit of work over conn.
func NewKeyWriteFailingUoW(conn *sql.DB, keyPrefix string, err error) *KeyWriteFailingUoW {
	return &KeyWriteFailingUoW{Inner: db.NewSQLiteUnitOfWork(conn), KeyPrefix: keyPrefix, Err: err}
}

// Rejected returns how many writes were refused.
func (u *KeyWriteFailingUoW) Rejected() int {
	return int(u.writes.Load())
}

func (u *KeyWriteFailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &keyWriteFailingTx{DBTX: tx, uow: u})
	})
}

type keyWriteFailingTx struct {
	db.DBTX
	uow *KeyWriteFailingUoW
}

func (f *keyWriteFailingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if len(args) > 0 {
		if key, ok := args[0].(string); ok && strings.HasPrefix(key, f.uow.KeyPrefix) {
			f.uow.writes.Add(1)
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
