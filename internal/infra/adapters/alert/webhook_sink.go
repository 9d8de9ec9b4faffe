// File: internal/infra/adapters/alert/webhook_sink.go
package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"ai-support-companion/internal/domain/ports/adapter"
	"ai-support-companion/internal/infra/metrics"
	"ai-support-companion/internal/infra/worker"
)

// Compile-time check
var _ adapter.CrisisSink = (*WebhookSink)(nil)

// WebhookSink POSTs crisis alerts to an external monitoring endpoint.
// Delivery happens on the worker pool so a slow or dead endpoint can
// never delay the crisis response to the user.
type WebhookSink struct {
	url     string
	timeout time.Duration
	client  *http.Client
	pool    *worker.Pool
	log     *zerolog.Logger
}

func NewWebhookSink(url string, timeout time.Duration, pool *worker.Pool, logger *zerolog.Logger) *WebhookSink {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookSink{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		pool:    pool,
		log:     logger,
	}
}

// Notify enqueues delivery and returns immediately. A saturated queue is
// logged and counted, never surfaced to the caller.
func (s *WebhookSink) Notify(ctx context.Context, a adapter.CrisisAlert) error {
	err := s.pool.Submit(func(ctx context.Context) error {
		return s.deliver(ctx, a)
	})
	if err != nil {
		metrics.IncCrisisAlertFailure()
		s.log.Error().Str("event_id", a.EventID).Err(err).Msg("crisis alert dropped")
	}
	return nil
}

func (s *WebhookSink) deliver(ctx context.Context, a adapter.CrisisAlert) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	b, err := json.Marshal(a)
	if err != nil {
		metrics.IncCrisisAlertFailure()
		return fmt.Errorf("marshal alert: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(b))
	if err != nil {
		metrics.IncCrisisAlertFailure()
		return fmt.Errorf("build alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.IncCrisisAlertFailure()
		return fmt.Errorf("deliver alert %s: %w", a.EventID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		metrics.IncCrisisAlertFailure()
		return fmt.Errorf("deliver alert %s: http %d", a.EventID, resp.StatusCode)
	}
	return nil
}
