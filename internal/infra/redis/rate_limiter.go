package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter bounds how many messages a session may send per fixed
// window. It carries its own limit and window so callers only ever hand
// it a session id.
type RateLimiter struct {
	client *Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

func (r *RateLimiter) Allow(ctx context.Context, sessionID string) (bool, error) {
	key := fmt.Sprintf("rate_limit:%s:message", sessionID)

	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	// First hit in the window starts the clock. If the expire fails the
	// key would count forever, so drop it and report the failure.
	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window); err != nil {
			_ = r.client.Del(ctx, key)
			return false, err
		}
	}

	return count <= int64(r.limit), nil
}
