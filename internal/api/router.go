package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solgrid-labs/siterank/internal/ahp"
	"github.com/solgrid-labs/siterank/internal/events"
	"github.com/solgrid-labs/siterank/internal/geodata"
	"github.com/solgrid-labs/siterank/internal/metrics"
	"github.com/solgrid-labs/siterank/internal/store"
)

func NewRouter(
	evaluator *ahp.Evaluator,
	source geodata.ValueSource,
	s store.Store,
	e events.Client,
	m *metrics.Metrics,
	adminToken string,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RequestTimer(m))
	r.Use(RateLimitMiddleware(120))

	evaluations := NewEvaluationsHandler(evaluator, source, s, e, m)
	criteria := NewCriteriaHandler(evaluator.Registry())
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/evaluations", evaluations.Create)
		r.Get("/evaluations", evaluations.List)
		r.Get("/evaluations/{id}", evaluations.Get)

		r.Post("/weights/preview", evaluations.PreviewWeights)

		r.Get("/criteria", criteria.List)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
