// Package logsink writes audit events as structured log records. Events are
// not persisted; a log shipper is expected to collect them.
package logsink

import (
	"context"
	"errors"
	"log/slog"
	"time"

	audit "taxguard/pkg/platform/audit"
)

// Sink appends audit events to a slog.Logger.
type Sink struct {
	logger *slog.Logger
}

// New returns a Sink writing to logger.
func New(logger *slog.Logger) *Sink {
	return &Sink{logger: logger}
}

// Append logs event at Info with log_type=audit.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	if s.logger == nil {
		return errors.New("audit log sink has no logger")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, event.Action,
		slog.String("log_type", "audit"),
		slog.String("category", string(event.Category)),
		slog.String("timestamp", event.Timestamp.UTC().Format(time.RFC3339Nano)),
		slog.String("subject", event.Subject),
		slog.String("decision", event.Decision),
		slog.String("reason", event.Reason),
		slog.String("request_id", event.RequestID),
		slog.Int("block_count", event.BlockCount),
	)
	return nil
}
