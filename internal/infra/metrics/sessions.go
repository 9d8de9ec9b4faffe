package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(sessionsActive, sessionsSweptTotal, sessionRateLimited, sessionAppendFailures)
}

var (
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "support_sessions_active",
			Help: "Sessions currently held by the store.",
		},
	)

	sessionsSweptTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "support_sessions_swept_total",
			Help: "Sessions evicted by the idle sweep.",
		},
	)

	sessionRateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "support_sessions_rate_limited_total",
			Help: "Messages rejected by the per-session rate limiter.",
		},
	)

	sessionAppendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "support_sessions_append_failures_total",
			Help: "Exchanges that could not be written to the session store.",
		},
	)
)

func SetActiveSessions(n int) { sessionsActive.Set(float64(n)) }

func AddSweptSessions(n int) { sessionsSweptTotal.Add(float64(n)) }

func IncSessionRateLimited() { sessionRateLimited.Inc() }

func IncSessionAppendFailure() { sessionAppendFailures.Inc() }
