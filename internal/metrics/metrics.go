// Package metrics exposes Prometheus collectors for the solve pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels recorded per solve.
const (
	OutcomeCompleted   = "completed"
	OutcomeInfeasible  = "infeasible"
	OutcomeInvalid     = "invalid"
	OutcomeEngineError = "engine_error"
)

// Metrics counts solves by variant and outcome and tracks solve latency.
type Metrics struct {
	registry *prometheus.Registry

	Solves        *prometheus.CounterVec
	SolveDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobshop",
			Name:      "solves_total",
			Help:      "Solve requests by problem variant and outcome.",
		}, []string{"problem_type", "outcome"}),
		SolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jobshop",
			Name:      "solve_duration_seconds",
			Help:      "End-to-end solve pipeline duration.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"problem_type"}),
	}
}

// Handler serves the Prometheus exposition endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
