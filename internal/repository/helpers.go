package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/alexanderramin/tandem/internal/store"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExists is returned when creating a record whose key is taken.
	ErrExists = errors.New("already exists")
)

// keyPart escapes an id for use between ':' separators in a store key.
func keyPart(id string) string {
	return url.QueryEscape(id)
}

func unescapeKeyPart(part string) (string, error) {
	return url.QueryUnescape(part)
}

// getJSON decodes the value at key into v and reports whether it existed.
func getJSON(ctx context.Context, st store.Store, key string, v any) (bool, error) {
	data, ok, err := st.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

func putJSON(ctx context.Context, st store.Store, key string, v any) error {
	data, err := jsonMarshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return st.Set(ctx, key, data)
}

func jsonMarshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	return data, nil
}
