package events

import (
	"context"
	"log/slog"
)

// LogEventPublisher writes events to the log. It is the default when no
// broker is configured so event flow stays observable in development.
type LogEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) Publish(ctx context.Context, event *Event) error {
	p.logger.InfoContext(ctx, "Event published",
		"event_id", event.ID,
		"event_type", event.Type,
		"source", event.Source)
	return nil
}

func (p *LogEventPublisher) Close() error {
	return nil
}
