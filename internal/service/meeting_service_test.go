package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/remote"
	"github.com/alexanderramin/tandem/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitGrids(t *testing.T, env *testEnv, at time.Time, grids ...*domain.Grid) {
	t.Helper()
	for _, g := range grids {
		require.NoError(t, env.grids.Commit(context.Background(), g, at))
	}
}

func TestMeetingService_EndToEndScenario(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMeetingService(env.grids, env.projects, nil)
	ctx := context.Background()
	today := time.Date(2026, 10, 18, 8, 15, 0, 0, time.Local)

	commitGrids(t, env, today,
		testutil.NewTestGrid("p1", "alice", "09:00-0"),
		testutil.NewTestGrid("p1", "bob", "09:00-0"),
		testutil.NewTestGrid("p1", "carol", "09:00-0"),
		testutil.NewTestGrid("p1", "dave", "10:00-0"),
	)

	votes, err := svc.Aggregate(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.VoteMap{
		domain.MustParseSlot("09:00-0"): 3,
		domain.MustParseSlot("10:00-0"): 1,
	}, votes)

	sched, err := svc.ProposeAt(ctx, "p1", today)
	require.NoError(t, err)
	require.True(t, sched.HasProposal)
	assert.False(t, sched.Proposal.Explicit)
	assert.Equal(t, "09:00-0", sched.Proposal.Slot.Key())
	assert.Equal(t, 3, sched.Proposal.Votes)
	assert.Equal(t, "2026-10-18 09:00", sched.Proposal.Text)
	assert.Len(t, sched.Grids, 4)
	assert.NoError(t, sched.RemoteErr)
}

func TestMeetingService_NoGridsNoProposal(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMeetingService(env.grids, env.projects, nil)

	sched, err := svc.ProposeAt(context.Background(), "empty", time.Now())
	require.NoError(t, err)
	assert.False(t, sched.HasProposal)
	assert.Empty(t, sched.Votes)
}

func TestMeetingService_AggregateCountsEveryGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	all := domain.AllSlots()

	for round := range 20 {
		env := newTestEnv(t)
		svc := NewMeetingService(env.grids, env.projects, nil)
		ctx := context.Background()

		members := 1 + rng.Intn(6)
		var grids []*domain.Grid
		for m := range members {
			g := domain.NewGrid("p1", fmt.Sprintf("m%d", m))
			for range rng.Intn(20) {
				g.Toggle(all[rng.Intn(len(all))])
			}
			grids = append(grids, g)
		}
		commitGrids(t, env, time.Now(), grids...)

		votes, err := svc.Aggregate(ctx, "p1")
		require.NoError(t, err)

		for _, s := range all {
			want := 0
			for _, g := range grids {
				if g.Has(s) {
					want++
				}
			}
			assert.Equal(t, want, votes[s], "round %d slot %s", round, s)
		}
	}
}

func TestMeetingService_LocalExplicitMeetingOverrides(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMeetingService(env.grids, env.projects, env.remote)
	ctx := context.Background()

	proj := testutil.NewTestProject("Capstone", testutil.WithNextMeeting("2026-10-21 14:00"))
	require.NoError(t, env.projects.Create(ctx, proj))
	commitGrids(t, env, time.Now(), testutil.NewTestGrid(proj.ID, "u1", "09:00-0"))

	sched, err := svc.ProposeAt(ctx, proj.ID, time.Now())
	require.NoError(t, err)
	require.True(t, sched.HasProposal)
	assert.True(t, sched.Proposal.Explicit)
	assert.Equal(t, "2026-10-21 14:00", sched.Proposal.Text)
	assert.Equal(t, 1, sched.Votes[domain.MustParseSlot("09:00-0")])
	assert.Empty(t, env.remote.Calls(), "local override needs no backend call")
}

func TestMeetingService_RemoteMeetingUsedWhenLocalUnset(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMeetingService(env.grids, env.projects, env.remote)

	env.remote.Respond(remote.ProjectEndpoint("p1"), map[string]string{"nextMeeting": "2026-10-22 15:00"})
	commitGrids(t, env, time.Now(), testutil.NewTestGrid("p1", "u1", "09:00-0"))

	sched, err := svc.ProposeAt(context.Background(), "p1", time.Now())
	require.NoError(t, err)
	assert.True(t, sched.Proposal.Explicit)
	assert.Equal(t, "2026-10-22 15:00", sched.Proposal.Text)
}

func TestMeetingService_RemoteFailureFallsBackToVotes(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMeetingService(env.grids, env.projects, env.remote)
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.Local)

	env.remote.FailWith(remote.ErrUnavailable)
	commitGrids(t, env, today,
		testutil.NewTestGrid("p1", "u1", "13:00-2"),
		testutil.NewTestGrid("p1", "u2", "13:00-2", "10:00-0"),
	)

	sched, err := svc.ProposeAt(context.Background(), "p1", today)
	require.NoError(t, err)
	assert.ErrorIs(t, sched.RemoteErr, remote.ErrUnavailable)
	require.True(t, sched.HasProposal)
	assert.False(t, sched.Proposal.Explicit)
	assert.Equal(t, "2026-10-20 13:00", sched.Proposal.Text)
}

func TestMeetingService_InvalidRemoteMeetingIgnored(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMeetingService(env.grids, env.projects, env.remote)

	env.remote.Respond(remote.ProjectEndpoint("p1"), map[string]string{"nextMeeting": "tomorrow-ish"})
	commitGrids(t, env, time.Now(), testutil.NewTestGrid("p1", "u1", "09:00-0"))

	sched, err := svc.ProposeAt(context.Background(), "p1", time.Now())
	require.NoError(t, err)
	assert.Error(t, sched.RemoteErr)
	assert.False(t, sched.Proposal.Explicit)
}

func TestMeetingService_TieGoesToEarliestDayThenHour(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMeetingService(env.grids, env.projects, nil)
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.Local)

	commitGrids(t, env, today,
		testutil.NewTestGrid("p1", "u1", "15:00-1", "11:00-3"),
		testutil.NewTestGrid("p1", "u2", "15:00-1", "11:00-3", "10:00-1"),
		testutil.NewTestGrid("p1", "u3", "10:00-1"),
	)

	sched, err := svc.ProposeAt(context.Background(), "p1", today)
	require.NoError(t, err)
	assert.Equal(t, "10:00-1", sched.Proposal.Slot.Key())
	assert.Equal(t, "2026-10-19 10:00", sched.Proposal.Text)
}

func TestMeetingService_StaleGrids(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMeetingService(env.grids, env.projects, nil)
	today := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)

	commitGrids(t, env, today.AddDate(0, 0, -2), testutil.NewTestGrid("p1", "old", "09:00-0"))
	commitGrids(t, env, today, testutil.NewTestGrid("p1", "new", "09:00-0"))

	sched, err := svc.ProposeAt(context.Background(), "p1", today)
	require.NoError(t, err)
	assert.Equal(t, 1, sched.StaleGrids())
}

func TestMeetingService_LocalStoreFailureSurfaces(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMeetingService(env.grids, env.projects, nil)
	boom := errors.New("read failed")

	env.store.FailGet(boom)
	_, err := svc.ProposeAt(context.Background(), "p1", time.Now())
	assert.ErrorIs(t, err, boom)

	_, err = svc.Aggregate(context.Background(), "p1")
	assert.ErrorIs(t, err, boom)
}
