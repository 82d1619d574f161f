package testutil

import (
	"sync"
	"time"
)

// FakeClock is a manually advanced clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// FakeTicks is a tick source whose ticks are fired by the test.
type FakeTicks struct {
	mu      sync.Mutex
	ch      chan time.Time
	started  int
	stopped  int
	interval time.Duration
}

// Source matches focus.TickSource. Each call starts a new tick channel.
func (f *FakeTicks) Source(interval time.Duration) (<-chan time.Time, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interval = interval
	ch := make(chan time.Time)
	f.ch = ch
	f.started++
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			f.stopped++
			f.mu.Unlock()
		})
	}
}

// Fire delivers one tick to the current run. It reports false when nothing
// received the tick within a short wait, e.g. because the run was stopped.
func (f *FakeTicks) Fire() bool {
	f.mu.Lock()
	ch := f.ch
	f.mu.Unlock()
	if ch == nil {
		return false
	}
	select {
	case ch <- time.Now():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

// Started reports how many tick runs were started.
func (f *FakeTicks) Started() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

// Interval returns the tick interval the latest run asked for.
func (f *FakeTicks) Interval() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interval
}

// Stopped reports how many tick runs were stopped.
func (f *FakeTicks) Stopped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}
