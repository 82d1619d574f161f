package focus

import (
	"testing"
	"time"

	"github.com/alexanderramin/tandem/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimer(t *testing.T) (*Timer, *testutil.FakeClock, *testutil.FakeTicks) {
	t.Helper()
	clk := testutil.NewFakeClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local))
	ticks := &testutil.FakeTicks{}
	timer := New(WithClock(clk), WithTickSource(ticks.Source))
	t.Cleanup(func() { timer.Dispose() })
	return timer, clk, ticks
}

func TestTimer_StartWaitPause(t *testing.T) {
	timer, clk, _ := newTestTimer(t)

	require.NoError(t, timer.Start())
	clk.Advance(5 * time.Second)
	frozen := timer.Pause()

	assert.Equal(t, 5*time.Second, frozen)
	assert.Equal(t, 5000*time.Millisecond, timer.Elapsed())
	assert.Equal(t, Paused, timer.State())

	clk.Advance(time.Minute)
	assert.Equal(t, 5*time.Second, timer.Elapsed(), "paused time does not advance")
}

func TestTimer_TickInterval(t *testing.T) {
	timer, _, ticks := newTestTimer(t)
	require.NoError(t, timer.Start())
	assert.Equal(t, time.Second, ticks.Interval())

	fast := &testutil.FakeTicks{}
	quick := New(WithTickSource(fast.Source), WithTickInterval(250*time.Millisecond))
	t.Cleanup(func() { quick.Dispose() })
	require.NoError(t, quick.Start())
	assert.Equal(t, 250*time.Millisecond, fast.Interval())
}

func TestTimer_PauseWhileIdleIsNoop(t *testing.T) {
	timer, clk, ticks := newTestTimer(t)

	clk.Advance(3 * time.Second)
	assert.Equal(t, time.Duration(0), timer.Pause())
	assert.Equal(t, Idle, timer.State())
	assert.Equal(t, 0, ticks.Started())
}

func TestTimer_ResumeContinuesElapsed(t *testing.T) {
	timer, clk, _ := newTestTimer(t)

	require.NoError(t, timer.Start())
	clk.Advance(5 * time.Second)
	timer.Pause()

	clk.Advance(10 * time.Minute)
	require.NoError(t, timer.Start())
	clk.Advance(3 * time.Second)
	timer.Pause()

	assert.Equal(t, 8*time.Second, timer.Elapsed())
	assert.Equal(t, int64(8), timer.ElapsedSeconds())
}

func TestTimer_ElapsedIsLiveWhileRunning(t *testing.T) {
	timer, clk, _ := newTestTimer(t)

	require.NoError(t, timer.Start())
	clk.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, timer.Elapsed())
	assert.Equal(t, int64(1), timer.ElapsedSeconds())
}

func TestTimer_StartWhileRunningIsNoop(t *testing.T) {
	timer, clk, ticks := newTestTimer(t)

	require.NoError(t, timer.Start())
	clk.Advance(2 * time.Second)
	require.NoError(t, timer.Start())
	clk.Advance(2 * time.Second)

	assert.Equal(t, 4*time.Second, timer.Elapsed())
	assert.Equal(t, 1, ticks.Started())
}

func TestTimer_TickEmitsClockDerivedText(t *testing.T) {
	timer, clk, ticks := newTestTimer(t)
	got := make(chan string, 4)
	timer.OnTick(func(s string) { got <- s })

	require.NoError(t, timer.Start())

	// Ticks re-read the clock; skipped ticks do not drift the display.
	clk.Advance(61 * time.Second)
	require.True(t, ticks.Fire())
	assert.Equal(t, "01:01", receive(t, got))

	clk.Advance(2 * time.Hour)
	require.True(t, ticks.Fire())
	assert.Equal(t, "121:01", receive(t, got))
}

func TestTimer_PauseCancelsTicks(t *testing.T) {
	timer, clk, ticks := newTestTimer(t)
	got := make(chan string, 4)
	timer.OnTick(func(s string) { got <- s })

	require.NoError(t, timer.Start())
	clk.Advance(time.Second)
	timer.Pause()
	ticks.Fire()

	select {
	case s := <-got:
		t.Fatalf("unexpected tick %q after pause", s)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Eventually(t, func() bool { return ticks.Stopped() == 1 }, time.Second, 5*time.Millisecond)
}

func TestTimer_UnsubscribeStopsDelivery(t *testing.T) {
	timer, _, ticks := newTestTimer(t)
	first := make(chan string, 4)
	second := make(chan string, 4)
	cancel := timer.OnTick(func(s string) { first <- s })
	timer.OnTick(func(s string) { second <- s })

	require.NoError(t, timer.Start())
	cancel()
	require.True(t, ticks.Fire())

	assert.Equal(t, "00:00", receive(t, second))
	assert.Empty(t, first)
}

func TestTimer_DisposePausesAndRejectsStart(t *testing.T) {
	timer, clk, _ := newTestTimer(t)

	require.NoError(t, timer.Start())
	clk.Advance(7 * time.Second)

	assert.Equal(t, 7*time.Second, timer.Dispose())
	assert.Equal(t, Paused, timer.State())
	assert.ErrorIs(t, timer.Start(), ErrDisposed)
	assert.Equal(t, 7*time.Second, timer.Dispose(), "dispose is idempotent")
}

func TestTimer_ClockStepBackNeverShrinksElapsed(t *testing.T) {
	timer, clk, _ := newTestTimer(t)

	require.NoError(t, timer.Start())
	clk.Advance(4 * time.Second)
	timer.Pause()
	require.NoError(t, timer.Start())
	clk.Advance(-time.Hour)

	assert.Equal(t, 4*time.Second, timer.Elapsed())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00", Format(0))
	assert.Equal(t, "00:00", Format(-time.Second))
	assert.Equal(t, "00:59", Format(59*time.Second+900*time.Millisecond))
	assert.Equal(t, "01:00", Format(time.Minute))
	assert.Equal(t, "60:00", Format(time.Hour))
	assert.Equal(t, "125:07", Format(125*time.Minute+7*time.Second))
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick")
		return ""
	}
}
