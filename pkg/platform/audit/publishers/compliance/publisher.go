// Package compliance provides a fail-closed audit publisher for verdict events.
//
// Emit is synchronous: the caller blocks until the sink accepts the event. If
// the sink fails an error is returned and the calling operation must fail, so
// no verdict leaves the service without an audit record.
package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit "taxguard/pkg/platform/audit"
)

// Publisher emits compliance events with fail-closed semantics.
type Publisher struct {
	sink   audit.Sink
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// New creates a compliance publisher writing to sink.
func New(sink audit.Sink, opts ...Option) *Publisher {
	p := &Publisher{
		sink: sink,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit validates event, stamps it and hands it to the sink.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Action == "" {
		return fmt.Errorf("compliance event requires Action")
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}

	if err := p.sink.Append(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: compliance audit failed",
				"action", event.Action,
				"request_id", event.RequestID,
				"error", err,
			)
		}
		return fmt.Errorf("compliance audit failed: %w", err)
	}
	return nil
}
