package service

import (
	"context"
	"log/slog"
	"time"
)

// UseCaseEvent describes one execution of a service use case. Degraded marks
// a run that succeeded locally while the backend was unreachable.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Degraded  bool
	Fields    map[string]any
}

// Success reports whether the use case returned without error.
func (e UseCaseEvent) Success() bool { return e.Err == nil }

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes use-case events to logger: Info on success,
// Warn when degraded, Error on failure.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]slog.Attr, 0, 4+len(event.Fields))
	attrs = append(attrs,
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success()),
	)
	for k, v := range event.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	level := slog.LevelInfo
	switch {
	case event.Err != nil:
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	case event.Degraded:
		level = slog.LevelWarn
	}
	o.logger.LogAttrs(ctx, level, "service_use_case", attrs...)
}

// multiObserver fans one event out to several observers.
type multiObserver []UseCaseObserver

func (m multiObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

func combineObservers(observers []UseCaseObserver) UseCaseObserver {
	var live multiObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	}
	return live
}

// useCaseRun collects the outcome of one use case until finish is called.
type useCaseRun struct {
	observer  UseCaseObserver
	name      string
	startedAt time.Time
	fields    map[string]any
	degraded  bool
}

func startUseCase(observer UseCaseObserver, name string, fields map[string]any) *useCaseRun {
	if fields == nil {
		fields = map[string]any{}
	}
	return &useCaseRun{observer: observer, name: name, startedAt: time.Now(), fields: fields}
}

func (r *useCaseRun) set(key string, value any) { r.fields[key] = value }

func (r *useCaseRun) finish(ctx context.Context, err error) {
	r.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      r.name,
		StartedAt: r.startedAt,
		Duration:  time.Since(r.startedAt),
		Err:       err,
		Degraded:  r.degraded,
		Fields:    r.fields,
	})
}
