package ai

import (
	"context"

	"ai-support-companion/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.GenerationAdapter = (*limitedAI)(nil)

type limitedAI struct {
	inner adapter.GenerationAdapter
	sem   chan struct{}
}

// NewLimitedAI bounds concurrent upstream calls with a semaphore. The
// wait counts against the caller's ctx so a cancelled request never
// holds a slot.
func NewLimitedAI(inner adapter.GenerationAdapter, maxConcurrent int) adapter.GenerationAdapter {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedAI{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedAI) Generate(ctx context.Context, req adapter.GenerationRequest) (string, error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-l.sem }()
	return l.inner.Generate(ctx, req)
}
