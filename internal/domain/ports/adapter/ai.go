package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Message represents a chat message sent to an AI provider.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// GenerationRequest carries the prompt plus the bounded recent history.
type GenerationRequest struct {
	System   string
	History  []Message
	Language string
}

// UpstreamKind classifies a failed generation attempt.
type UpstreamKind string

const (
	KindRateLimited UpstreamKind = "rate_limited"
	KindUnavailable UpstreamKind = "unavailable" // transient, e.g. cold start
	KindClient      UpstreamKind = "client"      // malformed request / unauthorized
	KindNetwork     UpstreamKind = "network"
	KindTimeout     UpstreamKind = "timeout"
)

// UpstreamError is the typed failure for one generation attempt.
type UpstreamError struct {
	Kind       UpstreamKind
	Status     int           // HTTP status when known, else 0
	RetryAfter time.Duration // server-provided wait hint, 0 when absent
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s (http %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt may succeed.
func (e *UpstreamError) Retryable() bool { return e.Kind != KindClient }

// Hint returns the server-provided wait before the next attempt, if any.
func (e *UpstreamError) Hint() time.Duration { return e.RetryAfter }

// Immediate reports whether the next attempt should skip backoff entirely.
func (e *UpstreamError) Immediate() bool { return e.Kind == KindUnavailable }

// AsUpstream extracts an UpstreamError from an error chain.
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// GenerationAdapter is the port for the upstream text-generation backend.
type GenerationAdapter interface {
	// Generate returns the assistant text for the request. Failures are
	// reported as *UpstreamError so callers can classify them.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
