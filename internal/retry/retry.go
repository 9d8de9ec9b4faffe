// File: internal/retry/retry.go
package retry

import (
	"context"
	"time"
)

// Policy is a declarative retry configuration. It carries no state; the
// same value can be shared by any number of concurrent callers.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// Retryable decides whether a failure is worth another attempt.
	// A nil predicate retries everything.
	Retryable func(error) bool
}

// DefaultPolicy matches the upstream behavior the pipeline assumes.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 4,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    8 * time.Second,
	}
}

// Hinter lets an error carry a server-provided wait (e.g. Retry-After).
type Hinter interface {
	Hint() time.Duration
}

// Immediater lets an error request an immediate retry with no backoff
// (e.g. a cold-start 503 that resolves as soon as the instance is warm).
type Immediater interface {
	Immediate() bool
}

// Do runs fn until it succeeds, the policy is exhausted, a non-retryable
// error occurs, or ctx is done. The backoff wait is cooperative: it
// suspends only this caller, never a shared resource.
//
// The returned attempt count includes the final (successful or failing)
// attempt.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) (attempts int, err error) {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	delay := p.BaseDelay

	for attempt := 1; ; attempt++ {
		err = fn(ctx)
		if err == nil {
			return attempt, nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return attempt, err
		}
		if attempt >= p.MaxAttempts {
			return attempt, err
		}
		if ctx.Err() != nil {
			return attempt, ctx.Err()
		}

		wait := delay
		if h, ok := err.(Hinter); ok && h.Hint() > 0 {
			wait = h.Hint()
		}
		if im, ok := err.(Immediater); ok && im.Immediate() {
			wait = 0
		}
		if p.MaxDelay > 0 && wait > p.MaxDelay {
			wait = p.MaxDelay
		}

		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return attempt, ctx.Err()
			case <-timer.C:
			}
		}

		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}
