package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		aiAttemptsTotal,
		aiRetriesTotal,
		aiFallbacksTotal,
		aiCallsLatencyMs,
	)
}

var (
	aiAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_attempts_total",
			Help: "Upstream generation attempts per provider and outcome kind.",
		},
		[]string{"provider", "kind"}, // kind: 'ok' or the upstream error kind
	)

	aiRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_retries_total",
			Help: "Generation calls that needed more than one attempt.",
		},
		[]string{"provider"},
	)

	aiFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_fallbacks_total",
			Help: "Generation calls resolved with the deterministic fallback text.",
		},
		[]string{"provider", "reason"}, // reason: 'exhausted', 'client_error'
	)

	aiCallsLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_calls_latency_ms",
			Help:    "End-to-end generation latency (all attempts) in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
		},
		[]string{"provider", "success"},
	)
)

func ObserveAttempt(provider, kind string) {
	aiAttemptsTotal.WithLabelValues(norm(provider), norm(kind)).Inc()
}

func ObserveGeneration(provider string, attempts int, latencyMs int, success bool) {
	if attempts > 1 {
		aiRetriesTotal.WithLabelValues(norm(provider)).Inc()
	}
	aiCallsLatencyMs.WithLabelValues(norm(provider), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func IncFallback(provider, reason string) {
	aiFallbacksTotal.WithLabelValues(norm(provider), norm(reason)).Inc()
}
