package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: every
	// pre-flight verdict and payroll check, passing or not.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations is the fallback for events without a registered category.
	CategoryOperations EventCategory = "operations"
)

// AuditEvent names an auditable action.
type AuditEvent string

const (
	EventPreflightAudited AuditEvent = "preflight_audited"
	EventPayrollVerified  AuditEvent = "payroll_verified"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventPreflightAudited: CategoryCompliance,
	EventPayrollVerified:  CategoryCompliance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is emitted from domain logic to capture a verdict. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	// Subject identifies what was evaluated, e.g. a jurisdiction code.
	Subject   string
	Decision  string
	Reason    string
	RequestID string
	// BlockCount is the number of block reasons attached to the verdict.
	BlockCount int
}

// Sink receives audit events. Implementations must be safe for concurrent use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
