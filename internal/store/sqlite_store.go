package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/tandem/internal/db"
)

// SQLiteStore implements Store on the kv_entries table.
type SQLiteStore struct {
	conn *sql.DB
	uow  db.UnitOfWork

	// writeMu gives Update a single writer inside this process; the
	// transaction covers other processes sharing the file.
	writeMu sync.Mutex
	now     func() time.Time
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithUnitOfWork replaces the transaction runner used by Update.
func WithUnitOfWork(uow db.UnitOfWork) Option {
	return func(s *SQLiteStore) { s.uow = uow }
}

// NewSQLiteStore creates a store over an opened database.
func NewSQLiteStore(conn *sql.DB, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{
		conn: conn,
		uow:  db.NewSQLiteUnitOfWork(conn),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return get(ctx, s.conn, key)
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return set(ctx, s.conn, key, value, s.now())
}

func (s *SQLiteStore) Enumerate(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT key FROM kv_entries WHERE key >= ? ORDER BY key`
	rows, err := s.conn.QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("enumerating keys %q: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		if !strings.HasPrefix(key, prefix) {
			break
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keys: %w", err)
	}
	return keys, nil
}

func (s *SQLiteStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, ok, err := get(ctx, tx, key)
		if err != nil {
			return err
		}
		next, err := fn(current, ok)
		if err != nil {
			return err
		}
		return set(ctx, tx, key, next, s.now())
	})
	if errors.Is(err, ErrAbort) {
		return nil
	}
	return err
}

func get(ctx context.Context, q db.DBTX, key string) ([]byte, bool, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

func set(ctx context.Context, q db.DBTX, key string, value []byte, now time.Time) error {
	if value == nil {
		value = []byte{}
	}
	query := `INSERT INTO kv_entries (key, value, version, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value,
			version = kv_entries.version + 1,
			updated_at = excluded.updated_at`
	if _, err := q.ExecContext(ctx, query, key, value, now.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}
