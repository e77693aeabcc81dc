// Package classification decides whether a worker is an employee or an
// independent contractor from three control signals.
package classification

// WorkerType is the externally visible classification tag. Callers should
// treat the values as opaque; the US encoding is used on the wire.
type WorkerType string

const (
	Employee   WorkerType = "W2"
	Contractor WorkerType = "1099"
)

// ParseWorkerType reports whether s is one of the known tags.
func ParseWorkerType(s string) (WorkerType, bool) {
	switch WorkerType(s) {
	case Employee, Contractor:
		return WorkerType(s), true
	default:
		return WorkerType(s), false
	}
}

// Facts are the control signals gathered about one engagement.
type Facts struct {
	// BehavioralControl: the engaging party directs how the work is done.
	BehavioralControl bool
	// FinancialControl: the engaging party controls expenses, tools or payment method.
	FinancialControl bool
	// RelationshipPermanence: the engagement is open-ended rather than project-bound.
	RelationshipPermanence bool
}

// Classify applies the two-factor approximation of the common-law test.
// First match wins; without strong control signals the worker is a contractor.
func Classify(behavioralControl, financialControl, relationshipPermanence bool) WorkerType {
	if behavioralControl && financialControl {
		return Employee
	}
	if relationshipPermanence && behavioralControl {
		return Employee
	}
	return Contractor
}

// Classify is shorthand for Classify over f's fields.
func (f Facts) Classify() WorkerType {
	return Classify(f.BehavioralControl, f.FinancialControl, f.RelationshipPermanence)
}
