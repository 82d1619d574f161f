package service

import (
	"context"

	"github.com/alexanderramin/tandem/internal/focus"
)

// FocusSession pairs a timer with the telemetry of its (user, project).
// Pausing and closing checkpoint the elapsed time.
type FocusSession struct {
	timer     *focus.Timer
	telemetry *TelemetrySession
}

// NewFocusSession starts tracking with an idle timer.
func NewFocusSession(timer *focus.Timer, telemetry *TelemetrySession) *FocusSession {
	return &FocusSession{timer: timer, telemetry: telemetry}
}

func (s *FocusSession) Timer() *focus.Timer { return s.timer }

func (s *FocusSession) Start() error {
	return s.timer.Start()
}

// Pause stops the timer and checkpoints. Pausing an idle or paused timer
// checkpoints nothing new.
func (s *FocusSession) Pause(ctx context.Context) (CheckpointResult, error) {
	s.timer.Pause()
	return s.telemetry.Checkpoint(ctx, s.timer.ElapsedSeconds())
}

// Toggle pauses a running session and starts any other.
func (s *FocusSession) Toggle(ctx context.Context) (CheckpointResult, error) {
	if s.timer.State() == focus.Running {
		return s.Pause(ctx)
	}
	return CheckpointResult{}, s.timer.Start()
}

// Close disposes the timer and checkpoints what it accumulated. It is safe
// to call more than once.
func (s *FocusSession) Close(ctx context.Context) (CheckpointResult, error) {
	s.timer.Dispose()
	return s.telemetry.Checkpoint(ctx, s.timer.ElapsedSeconds())
}
