package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taxguard/internal/platform/metrics"
	"taxguard/pkg/platform/httputil"
	"taxguard/pkg/platform/middleware/metadata"
	"taxguard/pkg/platform/middleware/requestid"
	"taxguard/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by module handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the shared middleware chain, operational endpoints and
// every module handler. The router stays thin; business logic lives in the
// module services.
func NewRouter(logger *slog.Logger, gatherer prometheus.Gatherer, httpMetrics *metrics.Metrics, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}))

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
