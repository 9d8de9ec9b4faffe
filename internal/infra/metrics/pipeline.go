package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		messagesTotal,
		pipelineLatencyMs,
		validationIssuesTotal,
	)
}

var (
	messagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_messages_total",
			Help: "Processed messages by outcome (completed/crisis/rejected).",
		},
		[]string{"outcome"},
	)

	pipelineLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "support_pipeline_latency_ms",
			Help:    "Full pipeline latency in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"crisis"},
	)

	validationIssuesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "support_validation_issues_total",
			Help: "Responses flagged by the validator (non-fatal).",
		},
	)
)

func IncMessage(outcome string) {
	messagesTotal.WithLabelValues(norm(outcome)).Inc()
}

func ObservePipeline(latencyMs int, crisis bool) {
	pipelineLatencyMs.WithLabelValues(strconv.FormatBool(crisis)).Observe(float64(latencyMs))
}

func IncValidationIssue() { validationIssuesTotal.Inc() }
