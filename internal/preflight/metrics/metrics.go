package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the preflight module.
type Metrics struct {
	// Audit verdicts by outcome
	AuditOutcome *prometheus.CounterVec

	// Block reasons by the check that raised them
	Blocks *prometheus.CounterVec

	// Nexus checks by jurisdiction and verdict
	NexusChecks *prometheus.CounterVec

	// Worker classifications by computed type
	Classifications *prometheus.CounterVec

	// Payroll gross-to-net verifications by verdict
	PayrollVerifications *prometheus.CounterVec

	// Overall audit latency
	AuditLatency prometheus.Histogram
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the preflight metrics with reg. Tests pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuditOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxguard_preflight_audits_total",
			Help: "Total pre-flight audits by outcome",
		}, []string{"outcome"}), // outcome: "allowed", "blocked"

		Blocks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxguard_preflight_blocks_total",
			Help: "Total block reasons raised by check kind",
		}, []string{"kind"}), // kind: "misclassification", "nexus", "speculative_setoff", "remittance"

		NexusChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxguard_nexus_checks_total",
			Help: "Total nexus checks by jurisdiction and verdict, standalone and within audits",
		}, []string{"jurisdiction", "verified"}),

		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxguard_worker_classifications_total",
			Help: "Total worker classifications by computed type, standalone and within audits",
		}, []string{"worker_type"}),

		PayrollVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxguard_payroll_verifications_total",
			Help: "Total payroll gross-to-net verifications by verdict",
		}, []string{"verified"}),

		AuditLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "taxguard_preflight_audit_duration_seconds",
			Help:    "Duration of a pre-flight audit including audit event emission",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

// IncrementOutcome records an audit verdict.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.AuditOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncrementBlock records one block reason.
func (m *Metrics) IncrementBlock(kind string) {
	if m != nil {
		m.Blocks.WithLabelValues(kind).Inc()
	}
}

// IncrementNexusCheck records a nexus verdict.
func (m *Metrics) IncrementNexusCheck(jurisdiction string, verified bool) {
	if m != nil {
		v := "false"
		if verified {
			v = "true"
		}
		m.NexusChecks.WithLabelValues(jurisdiction, v).Inc()
	}
}

// IncrementClassification records a computed worker type.
func (m *Metrics) IncrementClassification(workerType string) {
	if m != nil {
		m.Classifications.WithLabelValues(workerType).Inc()
	}
}

// IncrementPayrollVerification records a payroll verdict.
func (m *Metrics) IncrementPayrollVerification(verified bool) {
	if m != nil {
		m.PayrollVerifications.WithLabelValues(strconv.FormatBool(verified)).Inc()
	}
}

// ObserveAuditLatency records the total audit duration.
func (m *Metrics) ObserveAuditLatency(d time.Duration) {
	if m != nil {
		m.AuditLatency.Observe(d.Seconds())
	}
}
