package preflight

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"taxguard/internal/classification"
	"taxguard/internal/nexus"
	"taxguard/internal/payroll"
	"taxguard/internal/preflight/metrics"
	"taxguard/internal/preflight/ports"
	dErrors "taxguard/pkg/domain-errors"
	"taxguard/pkg/platform/audit"
	"taxguard/pkg/requestcontext"
)

const (
	outcomeAllowed = "allowed"
	outcomeBlocked = "blocked"

	payrollVerified    = "verified"
	payrollDiscrepancy = "discrepancy"

	otherJurisdiction = "other"
)

// Service runs pre-flight audits against an injected nexus threshold table.
// It is safe for concurrent use: the table is immutable and no other state is
// kept between calls.
type Service struct {
	table   *nexus.Table
	auditor ports.AuditPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithAuditPublisher emits one compliance event per audit.
func WithAuditPublisher(p ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New creates a Service. The threshold table is required.
func New(table *nexus.Table, opts ...Option) (*Service, error) {
	if table == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "nexus threshold table is required")
	}
	s := &Service{
		table:  table,
		tracer: otel.Tracer("taxguard/internal/preflight"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Audit evaluates intent and records the verdict. The returned error is only
// ever an audit-trail failure; the rules themselves cannot fail.
func (s *Service) Audit(ctx context.Context, intent Intent) (*AuditResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "preflight.Audit")
	defer span.End()

	ev := evaluate(s.table, intent)
	blocks, kinds := ev.blocks, ev.kinds
	result := &AuditResult{
		Allowed: len(blocks) == 0,
		Blocks:  blocks,
	}

	outcome := outcomeAllowed
	if !result.Allowed {
		outcome = outcomeBlocked
	}
	span.SetAttributes(
		attribute.Bool("preflight.allowed", result.Allowed),
		attribute.Int("preflight.block_count", len(blocks)),
		attribute.Bool("preflight.worker_facts", intent.WorkerFacts != nil),
		attribute.Bool("preflight.sales_data", intent.SalesData != nil),
	)

	if s.auditor != nil {
		err := s.auditor.Emit(ctx, audit.Event{
			Category:   audit.CategoryCompliance,
			Timestamp:  requestcontext.Now(ctx),
			Action:     string(audit.EventPreflightAudited),
			Subject:    nexus.Normalize(intent.State),
			Decision:   outcome,
			Reason:     joinKinds(kinds),
			RequestID:  requestcontext.RequestID(ctx),
			BlockCount: len(blocks),
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "audit emit failed")
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "failed to emit preflight audit event",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
		}
	}

	s.metrics.IncrementOutcome(outcome)
	for _, k := range kinds {
		s.metrics.IncrementBlock(string(k))
	}
	if ev.classified != "" {
		s.metrics.IncrementClassification(string(ev.classified))
	}
	if ev.nexus != nil {
		s.metrics.IncrementNexusCheck(s.jurisdictionLabel(intent.State), ev.nexus.Verified)
	}
	s.metrics.ObserveAuditLatency(time.Since(start))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "preflight audit evaluated",
			"request_id", requestcontext.RequestID(ctx),
			"allowed", result.Allowed,
			"block_count", len(blocks),
		)
	}
	return result, nil
}

// Classify exposes the worker classification decision.
func (s *Service) Classify(ctx context.Context, facts classification.Facts) classification.WorkerType {
	wt := facts.Classify()
	s.metrics.IncrementClassification(string(wt))
	if s.logger != nil {
		s.logger.DebugContext(ctx, "worker classified",
			"request_id", requestcontext.RequestID(ctx),
			"worker_type", wt,
		)
	}
	return wt
}

// CheckNexus exposes the nexus threshold decision.
func (s *Service) CheckNexus(ctx context.Context, jurisdiction string, ytdSales float64, transactions int64) nexus.Result {
	result := s.table.Check(jurisdiction, ytdSales, transactions)
	s.metrics.IncrementNexusCheck(s.jurisdictionLabel(jurisdiction), result.Verified)

	if s.logger != nil {
		s.logger.DebugContext(ctx, "nexus checked",
			"request_id", requestcontext.RequestID(ctx),
			"jurisdiction", nexus.Normalize(jurisdiction),
			"verified", result.Verified,
		)
	}
	return result
}

// VerifyPayroll recomputes net pay for one pay stub and records the verdict
// as a compliance event. As with Audit, a failed event fails the call.
func (s *Service) VerifyPayroll(ctx context.Context, entry payroll.Entry) (*payroll.Result, error) {
	ctx, span := s.tracer.Start(ctx, "preflight.VerifyPayroll")
	defer span.End()

	result := payroll.VerifyGrossToNet(entry)
	span.SetAttributes(attribute.Bool("payroll.verified", result.Verified))

	decision := payrollVerified
	if !result.Verified {
		decision = payrollDiscrepancy
	}

	if s.auditor != nil {
		err := s.auditor.Emit(ctx, audit.Event{
			Category:  audit.CategoryCompliance,
			Timestamp: requestcontext.Now(ctx),
			Action:    string(audit.EventPayrollVerified),
			Subject:   entry.EmployeeID,
			Decision:  decision,
			Reason:    result.Discrepancy.String(),
			RequestID: requestcontext.RequestID(ctx),
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "audit emit failed")
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "failed to emit payroll audit event",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
		}
	}

	s.metrics.IncrementPayrollVerification(result.Verified)
	if s.logger != nil {
		s.logger.InfoContext(ctx, "payroll verified",
			"request_id", requestcontext.RequestID(ctx),
			"employee_id", entry.EmployeeID,
			"verified", result.Verified,
			"discrepancy", result.Discrepancy.String(),
		)
	}
	return &result, nil
}

// Thresholds returns the configured table for read-only inspection.
func (s *Service) Thresholds() *nexus.Table {
	return s.table
}

// jurisdictionLabel keeps the nexus metric label set to configured codes.
func (s *Service) jurisdictionLabel(jurisdiction string) string {
	code := nexus.Normalize(jurisdiction)
	if _, ok := s.table.Lookup(code); !ok {
		return otherJurisdiction
	}
	return code
}

func joinKinds(kinds []BlockKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}
