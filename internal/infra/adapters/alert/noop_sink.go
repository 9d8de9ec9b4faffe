package alert

import (
	"context"

	"ai-support-companion/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.CrisisSink = (*NoopSink)(nil)

// NoopSink is used in dev mode or when no webhook is configured.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (n *NoopSink) Notify(ctx context.Context, a adapter.CrisisAlert) error { return nil }
