package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. Registration happens via
// promauto against the default registry, so a single New per process.
type Metrics struct {
	EvaluationsTotal      *prometheus.CounterVec
	InconsistentTotal     prometheus.Counter
	EvaluationErrorsTotal *prometheus.CounterVec
	SuitabilityScore      prometheus.Histogram
	RequestDuration       *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		EvaluationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siterank_evaluations_total",
				Help: "Total number of suitability evaluations",
			},
			[]string{"category", "weights_source"},
		),
		InconsistentTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "siterank_inconsistent_matrices_total",
				Help: "Evaluations whose pairwise matrix exceeded the consistency limit",
			},
		),
		EvaluationErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siterank_evaluation_errors_total",
				Help: "Evaluation requests rejected by input validation",
			},
			[]string{"reason"},
		),
		SuitabilityScore: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "siterank_suitability_score",
				Help:    "Distribution of computed suitability scores",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "siterank_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"path", "method"},
		),
	}
}
