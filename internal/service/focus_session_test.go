package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tandem/internal/focus"
	"github.com/alexanderramin/tandem/internal/remote"
	"github.com/alexanderramin/tandem/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFocusSession(t *testing.T, env *testEnv) (*FocusSession, *testutil.FakeClock) {
	t.Helper()
	clk := testutil.NewFakeClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local))
	ticks := &testutil.FakeTicks{}
	timer := focus.New(focus.WithClock(clk), focus.WithTickSource(ticks.Source))
	sess := NewFocusSession(timer, env.telemetry().NewSession("u1", "p1"))
	return sess, clk
}

func TestFocusSession_PauseAndCloseCheckpoint(t *testing.T) {
	env := newTestEnv(t)
	sess, clk := newTestFocusSession(t, env)
	ctx := context.Background()

	require.NoError(t, sess.Start())
	clk.Advance(5 * time.Second)
	res, err := sess.Pause(ctx)
	require.NoError(t, err)
	assert.Equal(t, CheckpointAcknowledged, res.Outcome)
	assert.Equal(t, int64(5), res.Delta)

	require.NoError(t, sess.Start())
	clk.Advance(3 * time.Second)
	res, err = sess.Close(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Delta)
	assert.Equal(t, 8*time.Second, sess.Timer().Elapsed())

	res, err = sess.Close(ctx)
	require.NoError(t, err)
	assert.Equal(t, CheckpointSkipped, res.Outcome)

	assert.ErrorIs(t, sess.Start(), focus.ErrDisposed)
	assert.Equal(t, []int64{5, 3}, submittedSeconds(env.remote))
}

func TestFocusSession_PauseWhileIdleSubmitsNothing(t *testing.T) {
	env := newTestEnv(t)
	sess, _ := newTestFocusSession(t, env)

	res, err := sess.Pause(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CheckpointSkipped, res.Outcome)
	assert.Empty(t, env.remote.Calls())
}

func TestFocusSession_Toggle(t *testing.T) {
	env := newTestEnv(t)
	sess, clk := newTestFocusSession(t, env)
	ctx := context.Background()

	_, err := sess.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, focus.Running, sess.Timer().State())

	clk.Advance(61 * time.Second)
	env.remote.FailWith(remote.ErrUnavailable)
	res, err := sess.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, focus.Paused, sess.Timer().State())
	assert.Equal(t, CheckpointQueued, res.Outcome)
	assert.Equal(t, int64(61), res.Delta)
}
