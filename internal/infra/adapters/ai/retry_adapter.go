// File: internal/infra/adapters/ai/retry_adapter.go
package ai

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ai-support-companion/internal/domain/ports/adapter"
	"ai-support-companion/internal/infra/metrics"
	"ai-support-companion/internal/retry"
)

// Compile-time check
var _ adapter.GenerationAdapter = (*RetryingAdapter)(nil)

// RetryingAdapter wraps a provider with the declarative retry policy and
// absorbs terminal failures into a deterministic fallback text, so the
// pipeline above it always completes with a non-empty response.
type RetryingAdapter struct {
	inner    adapter.GenerationAdapter
	provider string
	policy   retry.Policy
	fallback func(language string) string
	log      *zerolog.Logger
}

// NewRetryingAdapter builds the resilient generation client. fallback
// receives the request language so the deterministic text can be
// localized.
func NewRetryingAdapter(inner adapter.GenerationAdapter, provider string, policy retry.Policy, fallback func(language string) string, logger *zerolog.Logger) *RetryingAdapter {
	if policy.Retryable == nil {
		policy.Retryable = func(err error) bool {
			if ue, ok := adapter.AsUpstream(err); ok {
				return ue.Retryable()
			}
			return true
		}
	}
	return &RetryingAdapter{inner: inner, provider: provider, policy: policy, fallback: fallback, log: logger}
}

// Generate never returns an error for upstream failures: after the policy
// is exhausted (or on a non-retryable client failure) it resolves to the
// fallback text. Only context cancellation propagates, so an abandoned
// request stops consuming attempts.
func (r *RetryingAdapter) Generate(ctx context.Context, req adapter.GenerationRequest) (string, error) {
	start := time.Now()
	var text string

	attempts, err := retry.Do(ctx, r.policy, func(ctx context.Context) error {
		out, attemptErr := r.inner.Generate(ctx, req)
		if attemptErr != nil {
			kind := "unknown"
			if ue, ok := adapter.AsUpstream(attemptErr); ok {
				kind = string(ue.Kind)
			}
			metrics.ObserveAttempt(r.provider, kind)
			return attemptErr
		}
		metrics.ObserveAttempt(r.provider, "ok")
		text = out
		return nil
	})

	latency := int(time.Since(start).Milliseconds())
	metrics.ObserveGeneration(r.provider, attempts, latency, err == nil)

	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	reason := "exhausted"
	if ue, ok := adapter.AsUpstream(err); ok && !ue.Retryable() {
		reason = "client_error"
	}
	metrics.IncFallback(r.provider, reason)
	r.log.Warn().
		Str("provider", r.provider).
		Int("attempts", attempts).
		Str("reason", reason).
		Err(err).
		Msg("generation failed, using fallback text")

	return r.fallback(req.Language), nil
}
