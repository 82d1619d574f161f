// Package store provides the durable key-value store the availability and
// telemetry engines persist through.
package store

import (
	"context"
	"errors"
)

// ErrAbort may be returned from an UpdateFunc to leave the stored value
// untouched without reporting a failure to the caller of Update.
var ErrAbort = errors.New("update aborted")

// UpdateFunc receives the current value (ok is false when the key is absent)
// and returns the replacement. It must not call back into the store.
type UpdateFunc func(current []byte, ok bool) ([]byte, error)

// Store is a durable key-value store. There are no guarantees across keys;
// Update is atomic for a single key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Enumerate returns every key starting with prefix in ascending order.
	Enumerate(ctx context.Context, prefix string) ([]string, error)
	// Update performs an atomic read-modify-write of key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
