package repository

import (
	"context"
	"time"

	"ai-support-companion/internal/domain/model"
)

// -----------------------------
// Conversation Sessions
// -----------------------------

// SessionStore owns all Session state. Implementations must be safe for
// concurrent use across sessions; callers for the SAME session are
// serialized by the store (Append is atomic per call).
type SessionStore interface {
	// GetOrCreate returns the session for id, creating it on first use.
	GetOrCreate(ctx context.Context, id string) (*model.Session, error)

	// Append atomically adds the given turns to the session. Passing the
	// user turn and assistant turn together guarantees they commit as a
	// unit once the response is final.
	Append(ctx context.Context, id string, turns ...model.Turn) error

	// Recent returns up to k most recent turns, oldest-first. A missing
	// session yields an empty slice, not an error.
	Recent(ctx context.Context, id string, k int) ([]model.Turn, error)

	// Clear removes the session entirely.
	Clear(ctx context.Context, id string) error

	// Sweep evicts sessions idle since before the cutoff and reports how
	// many were removed.
	Sweep(ctx context.Context, idleSince time.Time) (int, error)
}
