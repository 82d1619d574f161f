package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/tandem/internal/store"
	"github.com/alexanderramin/tandem/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_UpdateWriteFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewTestDB(t)
	plain := store.NewSQLiteStore(conn)
	require.NoError(t, plain.Set(ctx, "telemetry.retryQueue", []byte(`[]`)))

	boom := errors.New("disk full")
	uow := testutil.NewKeyWriteFailingUoW(conn, "telemetry.", boom)
	failing := store.NewSQLiteStore(conn, store.WithUnitOfWork(uow))

	err := failing.Update(ctx, "telemetry.retryQueue", func(cur []byte, ok bool) ([]byte, error) {
		return []byte(`[{"enqueueTimestamp":1}]`), nil
	})
	require.ErrorIs(t, err, boom)

	got, ok, err := plain.Get(ctx, "telemetry.retryQueue")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(got))
	assert.Equal(t, 1, uow.Rejected())

	require.NoError(t, failing.Update(ctx, "profile", func([]byte, bool) ([]byte, error) {
		return []byte(`{"name":"Mina"}`), nil
	}))
	got, ok, err = plain.Get(ctx, "profile")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"name":"Mina"}`, string(got))
}
