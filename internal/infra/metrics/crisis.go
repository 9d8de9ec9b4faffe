package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(crisisDetectionsTotal, crisisAlertFailures)
}

var (
	crisisDetectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crisis_detections_total",
			Help: "Crisis signals detected, by severity.",
		},
		[]string{"severity"},
	)

	crisisAlertFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crisis_alert_failures_total",
			Help: "Crisis alerts that could not be delivered to the sink.",
		},
	)
)

func IncCrisisDetection(severity string) {
	crisisDetectionsTotal.WithLabelValues(norm(severity)).Inc()
}

func IncCrisisAlertFailure() { crisisAlertFailures.Inc() }
