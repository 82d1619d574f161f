package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tandem/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	repo := NewStoreProjectRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	deadline := testutil.Date(2026, 12, 1)
	proj := testutil.NewTestProject("Capstone",
		testutil.WithDeadline(deadline),
		testutil.WithNextMeeting("2026-10-20 10:00"),
		testutil.WithMembers("u1", "u2"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Capstone", fetched.Name)
	assert.Equal(t, "2026-10-20 10:00", fetched.NextMeeting)
	assert.Equal(t, []string{"u1", "u2"}, fetched.Members)
	require.NotNil(t, fetched.Deadline)
	assert.Equal(t, "2026-12-01", fetched.Deadline.Format("2006-01-02"))
}

func TestProjectRepo_CreateDuplicate(t *testing.T) {
	repo := NewStoreProjectRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("Capstone")
	require.NoError(t, repo.Create(ctx, proj))
	assert.ErrorIs(t, repo.Create(ctx, proj), ErrExists)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	repo := NewStoreProjectRepo(testutil.NewTestStore(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectRepo_GetByCode(t *testing.T) {
	repo := NewStoreProjectRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("Biology", testutil.WithCode("BIO01"))
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Other")))

	fetched, err := repo.GetByCode(ctx, "bio01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)

	_, err = repo.GetByCode(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ListOldestFirst(t *testing.T) {
	repo := NewStoreProjectRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	newer := testutil.NewTestProject("Newer")
	older := testutil.NewTestProject("Older")
	older.CreatedAt = newer.CreatedAt.Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, older))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Older", projects[0].Name)
	assert.Equal(t, "Newer", projects[1].Name)
}

func TestProjectRepo_Update(t *testing.T) {
	repo := NewStoreProjectRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("Capstone")
	assert.ErrorIs(t, repo.Update(ctx, proj), ErrNotFound)

	require.NoError(t, repo.Create(ctx, proj))
	proj.NextMeeting = "2026-10-21 14:00"
	proj.AddMember("u9")
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-21 14:00", fetched.NextMeeting)
	assert.Equal(t, []string{"u9"}, fetched.Members)
}
