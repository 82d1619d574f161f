package remote

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/tandem/internal/logging"
)

// CallEvent records metadata about one backend call.
type CallEvent struct {
	Method    string
	Endpoint  string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about backend calls.
type Observer interface {
	OnCallComplete(ctx context.Context, event CallEvent)
}

// LogObserver writes call events to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer logging to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logging.NoopIfNil(logger)}
}

func (o *LogObserver) OnCallComplete(ctx context.Context, event CallEvent) {
	attrs := []any{
		"method", event.Method,
		"endpoint", event.Endpoint,
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.WarnContext(ctx, "remote_call", append(attrs, "status", "err:"+event.ErrorCode)...)
		return
	}
	o.logger.DebugContext(ctx, "remote_call", append(attrs, "status", "ok")...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, CallEvent) {}
