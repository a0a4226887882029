package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent is the telemetry record a service emits when a use case
// finishes. Playbook application reports the number of practice blueprints it
// could not match against the funding reference through Unresolved; other use
// cases leave it zero. Fields carries per-use-case counters such as rows
// written.
type UseCaseEvent struct {
	Name       string
	StartedAt  time.Time
	Duration   time.Duration
	Err        error
	Unresolved int
	Fields     map[string]any
}

// Success reports whether the use case completed without error. An apply that
// degraded to unresolved practices still counts as a success; that condition
// surfaces as a warning instead.
func (e UseCaseEvent) Success() bool { return e.Err == nil }

// UseCaseObserver receives use-case completion events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver discards events. Tests and callers that opt out of
// telemetry get this by default.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver emits use-case events as slog text lines on w.
// Failures log at error level, applies with unmatched practices at warn, and
// everything else at info. A nil writer yields a no-op observer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"op", event.Name,
		"elapsed_ms", event.Duration.Milliseconds(),
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	switch {
	case event.Err != nil:
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "use case failed", attrs...)
	case event.Unresolved > 0:
		attrs = append(attrs, "unresolved", event.Unresolved)
		o.logger.WarnContext(ctx, "use case completed with unmatched practices", attrs...)
	default:
		o.logger.InfoContext(ctx, "use case completed", attrs...)
	}
}

func observerOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
