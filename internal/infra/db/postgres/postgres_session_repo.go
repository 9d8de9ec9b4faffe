// File: internal/infra/db/postgres/postgres_session_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ai-support-companion/internal/domain/model"
	"ai-support-companion/internal/domain/ports/repository"
)

// SessionRepo persists sessions and turns in postgres. Expected schema:
//
//	CREATE TABLE support_sessions (
//	  id             TEXT PRIMARY KEY,
//	  created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	  last_active_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE TABLE support_turns (
//	  id         BIGSERIAL PRIMARY KEY,
//	  session_id TEXT NOT NULL REFERENCES support_sessions(id) ON DELETE CASCADE,
//	  role       TEXT NOT NULL,
//	  content    TEXT NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
var _ repository.SessionStore = (*SessionRepo)(nil)

type SessionRepo struct {
	pool     *pgxpool.Pool
	maxTurns int
}

func NewSessionRepo(pool *pgxpool.Pool, maxTurns int) *SessionRepo {
	if maxTurns <= 0 {
		maxTurns = 50
	}
	return &SessionRepo{pool: pool, maxTurns: maxTurns}
}

func (r *SessionRepo) GetOrCreate(ctx context.Context, id string) (*model.Session, error) {
	const q = `
INSERT INTO support_sessions (id) VALUES ($1)
ON CONFLICT (id) DO UPDATE SET last_active_at = NOW()
RETURNING created_at, last_active_at;`

	s := model.NewSession(id)
	if err := r.pool.QueryRow(ctx, q, id).Scan(&s.CreatedAt, &s.LastActiveAt); err != nil {
		return nil, fmt.Errorf("get or create session: %w", err)
	}
	turns, err := r.Recent(ctx, id, r.maxTurns)
	if err != nil {
		return nil, err
	}
	s.Turns = turns
	return s, nil
}

// Append commits all turns and the activity bump in one transaction, so
// a user turn and its assistant turn land together or not at all.
func (r *SessionRepo) Append(ctx context.Context, id string, turns ...model.Turn) error {
	return r.pool.BeginTxFunc(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		const ensure = `
INSERT INTO support_sessions (id) VALUES ($1)
ON CONFLICT (id) DO UPDATE SET last_active_at = NOW();`
		if _, err := tx.Exec(ctx, ensure, id); err != nil {
			return fmt.Errorf("touch session: %w", err)
		}

		const insert = `
INSERT INTO support_turns (session_id, role, content, created_at)
VALUES ($1, $2, $3, COALESCE($4, NOW()));`
		for _, t := range turns {
			var ts interface{}
			if !t.Timestamp.IsZero() {
				ts = t.Timestamp
			}
			if _, err := tx.Exec(ctx, insert, id, string(t.Role), t.Content, ts); err != nil {
				return fmt.Errorf("insert turn: %w", err)
			}
		}

		const trim = `
DELETE FROM support_turns
WHERE session_id = $1 AND id NOT IN (
  SELECT id FROM support_turns WHERE session_id = $1 ORDER BY id DESC LIMIT $2
);`
		if _, err := tx.Exec(ctx, trim, id, r.maxTurns); err != nil {
			return fmt.Errorf("trim turns: %w", err)
		}
		return nil
	})
}

func (r *SessionRepo) Recent(ctx context.Context, id string, k int) ([]model.Turn, error) {
	const q = `
SELECT role, content, created_at FROM (
  SELECT id, role, content, created_at
  FROM support_turns WHERE session_id = $1
  ORDER BY id DESC LIMIT $2
) t ORDER BY id ASC;`

	rows, err := r.pool.Query(ctx, q, id, k)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var out []model.Turn
	for rows.Next() {
		t := model.Turn{SessionID: id}
		var role string
		if err := rows.Scan(&role, &t.Content, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Role = model.TurnRole(role)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SessionRepo) Clear(ctx context.Context, id string) error {
	const q = `DELETE FROM support_sessions WHERE id = $1;`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Sweep(ctx context.Context, idleSince time.Time) (int, error) {
	const q = `DELETE FROM support_sessions WHERE last_active_at < $1;`
	tag, err := r.pool.Exec(ctx, q, idleSince)
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
