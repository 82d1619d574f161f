package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/tandem/internal/store"
)

// FailingStore wraps a store and fails selected operations until cleared.
type FailingStore struct {
	store.Store

	mu        sync.Mutex
	getErr    error
	setErr    error
	enumErr   error
	updateErr error
}

// NewFailingStore wraps inner with no failures configured.
func NewFailingStore(inner store.Store) *FailingStore {
	return &FailingStore{Store: inner}
}

func (f *FailingStore) FailGet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

func (f *FailingStore) FailSet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

func (f *FailingStore) FailEnumerate(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enumErr = err
}

func (f *FailingStore) FailUpdate(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateErr = err
}

// Clear removes all injected failures.
func (f *FailingStore) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr, f.setErr, f.enumErr, f.updateErr = nil, nil, nil, nil
}

func (f *FailingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	err := f.getErr
	f.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	return f.Store.Get(ctx, key)
}

func (f *FailingStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	err := f.setErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Set(ctx, key, value)
}

func (f *FailingStore) Enumerate(ctx context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	err := f.enumErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Store.Enumerate(ctx, prefix)
}

func (f *FailingStore) Update(ctx context.Context, key string, fn store.UpdateFunc) error {
	f.mu.Lock()
	err := f.updateErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Update(ctx, key, fn)
}
