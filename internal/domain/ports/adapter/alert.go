package adapter

import (
	"context"
	"time"

	"ai-support-companion/internal/domain/model"
)

// CrisisAlert is emitted to an external monitoring collaborator when a
// crisis signal is detected.
type CrisisAlert struct {
	EventID         string               `json:"event_id"`
	SessionID       string               `json:"session_id"`
	Severity        model.CrisisSeverity `json:"severity"`
	MatchedKeywords []string             `json:"matched_keywords"`
	Timestamp       time.Time            `json:"timestamp"`
}

// CrisisSink delivers alerts. Delivery failure must never block the
// crisis response to the user; implementations are expected to be
// fire-and-forget from the caller's point of view.
type CrisisSink interface {
	Notify(ctx context.Context, alert CrisisAlert) error
}
