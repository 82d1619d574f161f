// Package focus implements the focus session timer: a start/pause state
// machine over an injected clock, with a once-per-second push of the
// formatted elapsed time to subscribers.
package focus

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// ErrDisposed is returned when starting a timer after Dispose.
var ErrDisposed = errors.New("focus timer disposed")

// State is the timer's lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Clock supplies wall-clock readings.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads time.Now.
var SystemClock Clock = systemClock{}

// TickSource starts a periodic tick and returns its channel and a stop func.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

func systemTicks(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Option configures a Timer.
type Option func(*Timer)

func WithClock(c Clock) Option { return func(t *Timer) { t.clock = c } }

func WithTickSource(src TickSource) Option { return func(t *Timer) { t.ticks = src } }

func WithTickInterval(d time.Duration) Option { return func(t *Timer) { t.interval = d } }

// Timer measures elapsed focus time. Elapsed is always computed from the
// clock, so ticks only drive display and a missed tick loses nothing.
type Timer struct {
	mu       sync.Mutex
	clock    Clock
	ticks    TickSource
	interval time.Duration

	state       State
	startedAt   time.Time     // valid while Running; already offset by accumulated
	accumulated time.Duration // frozen elapsed while Paused
	disposed    bool

	subs   []subscriber
	nextID int

	// gen identifies the current run so ticks from a previous run are dropped.
	gen  int
	stop chan struct{}
}

// New returns an Idle timer.
func New(opts ...Option) *Timer {
	t := &Timer{
		clock:    SystemClock,
		ticks:    systemTicks,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start moves Idle or Paused to Running. Resuming continues from the paused
// elapsed time. Starting a running timer is a no-op.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return ErrDisposed
	}
	if t.state == Running {
		return nil
	}
	t.startedAt = t.clock.Now().Add(-t.accumulated)
	t.state = Running
	t.gen++
	t.stop = make(chan struct{})

	ch, stopTicks := t.ticks(t.interval)
	go t.run(t.gen, ch, stopTicks, t.stop)
	return nil
}

// Pause freezes elapsed time and cancels future ticks. It is a no-op unless
// the timer is Running. The frozen elapsed time is returned either way.
func (t *Timer) Pause() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pauseLocked()
}

func (t *Timer) pauseLocked() time.Duration {
	if t.state != Running {
		return t.accumulated
	}
	t.accumulated = t.elapsedLocked()
	t.state = Paused
	close(t.stop)
	t.stop = nil
	return t.accumulated
}

// Elapsed returns the accumulated time, computed live while Running.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

func (t *Timer) elapsedLocked() time.Duration {
	if t.state != Running {
		return t.accumulated
	}
	d := t.clock.Now().Sub(t.startedAt)
	if d < t.accumulated {
		// The clock stepped backwards; never report less than already frozen.
		return t.accumulated
	}
	return d
}

// ElapsedSeconds returns whole elapsed seconds.
func (t *Timer) ElapsedSeconds() int64 {
	return int64(t.Elapsed() / time.Second)
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// OnTick registers fn to receive the "MM:SS" elapsed time on every tick while
// Running. The returned func unsubscribes.
func (t *Timer) OnTick(fn func(string)) (cancel func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.subs = append(t.subs, subscriber{id: id, fn: fn})
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.subs = slices.DeleteFunc(t.subs, func(s subscriber) bool { return s.id == id })
	}
}

// Dispose pauses the timer if running, drops all subscribers and rejects
// later starts. It returns the final elapsed time and is safe to call more
// than once.
func (t *Timer) Dispose() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := t.pauseLocked()
	t.disposed = true
	t.subs = nil
	return elapsed
}

func (t *Timer) run(gen int, ticks <-chan time.Time, stopTicks func(), stop <-chan struct{}) {
	defer stopTicks()
	for {
		select {
		case <-stop:
			return
		case <-ticks:
			t.emit(gen)
		}
	}
}

func (t *Timer) emit(gen int) {
	t.mu.Lock()
	if t.state != Running || t.gen != gen {
		t.mu.Unlock()
		return
	}
	text := Format(t.elapsedLocked())
	subs := slices.Clone(t.subs)
	t.mu.Unlock()

	for _, s := range subs {
		s.fn(text)
	}
}

type subscriber struct {
	id int
	fn func(string)
}

// Format renders d as "MM:SS". Minutes are not wrapped at 60.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
