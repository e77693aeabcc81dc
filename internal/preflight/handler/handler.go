package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taxguard/internal/classification"
	"taxguard/internal/nexus"
	"taxguard/internal/payroll"
	"taxguard/internal/preflight"
	"taxguard/pkg/platform/httputil"
	"taxguard/pkg/requestcontext"
)

// Service defines the interface for preflight operations.
type Service interface {
	Audit(ctx context.Context, intent preflight.Intent) (*preflight.AuditResult, error)
	Classify(ctx context.Context, facts classification.Facts) classification.WorkerType
	CheckNexus(ctx context.Context, jurisdiction string, ytdSales float64, transactions int64) nexus.Result
	Thresholds() *nexus.Table
	VerifyPayroll(ctx context.Context, entry payroll.Entry) (*payroll.Result, error)
}

// Handler wires preflight endpoints to the preflight service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a preflight handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts preflight endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/preflight/audit", h.HandleAudit)
	r.Post("/v1/classification/classify", h.HandleClassify)
	r.Post("/v1/nexus/check", h.HandleCheckNexus)
	r.Get("/v1/nexus/thresholds", h.HandleThresholds)
	r.Post("/v1/payroll/verify", h.HandleVerifyPayroll)
}

// HandleAudit handles POST /v1/preflight/audit requests.
func (h *Handler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AuditRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if req.WorkerType != nil {
		if _, known := classification.ParseWorkerType(*req.WorkerType); !known {
			h.logger.WarnContext(ctx, "declared worker type is not a known tag",
				"request_id", requestID,
				"worker_type", *req.WorkerType,
			)
		}
	}

	result, err := h.service.Audit(ctx, req.ToIntent())
	if err != nil {
		h.logger.ErrorContext(ctx, "preflight audit failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "preflight audit completed",
		"request_id", requestID,
		"client_ip", requestcontext.ClientIP(ctx),
		"allowed", result.Allowed,
		"block_count", len(result.Blocks),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromAuditResult(result))
}

// HandleClassify handles POST /v1/classification/classify requests.
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ClassifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	wt := h.service.Classify(ctx, req.Facts())
	httputil.WriteJSON(w, http.StatusOK, FromWorkerType(wt))
}

// HandleCheckNexus handles POST /v1/nexus/check requests.
func (h *Handler) HandleCheckNexus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[NexusCheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result := h.service.CheckNexus(ctx, req.Jurisdiction, *req.YTDSales, req.TransactionCount())
	httputil.WriteJSON(w, http.StatusOK, FromNexusResult(result))
}

// HandleVerifyPayroll handles POST /v1/payroll/verify requests.
func (h *Handler) HandleVerifyPayroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PayrollRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.VerifyPayroll(ctx, req.ToEntry())
	if err != nil {
		h.logger.ErrorContext(ctx, "payroll verification failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPayrollResult(result))
}

// HandleThresholds handles GET /v1/nexus/thresholds requests.
func (h *Handler) HandleThresholds(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromTable(h.service.Thresholds()))
}
