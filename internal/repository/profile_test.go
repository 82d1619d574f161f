package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_SaveAndGet(t *testing.T) {
	repo := NewStoreProfileRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &domain.Profile{
		UserID: "u1", Name: "Ada", Major: "CS", CreatedAt: created,
	}))

	p, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "CS", p.Major)
	assert.True(t, created.Equal(p.CreatedAt))
}
