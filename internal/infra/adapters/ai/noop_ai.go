package ai

import (
	"context"

	"ai-support-companion/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.GenerationAdapter = (*NoopAI)(nil)

// NoopAI is a dev-mode generation backend: it echoes a canned supportive
// reply without any network call.
type NoopAI struct{}

func NewNoopAI() *NoopAI { return &NoopAI{} }

func (n *NoopAI) Provider() string { return "noop" }

func (n *NoopAI) Generate(ctx context.Context, req adapter.GenerationRequest) (string, error) {
	return "Thank you for telling me. I'm here to listen - how long have you been feeling this way?", nil
}
