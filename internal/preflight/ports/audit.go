//go:generate mockgen -source=audit.go -destination=../mocks/mocks.go -package=mocks AuditPublisher

package ports

import (
	"context"

	"taxguard/pkg/platform/audit"
)

// AuditPublisher defines the interface for emitting audit events.
// It is defined here to keep the preflight module free of a concrete
// publisher dependency.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
