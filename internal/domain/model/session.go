package model

import (
	"time"
)

// TurnRole distinguishes who produced a turn.
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// Turn is one message within a session. Immutable once appended.
type Turn struct {
	SessionID string    `json:"session_id"`
	Role      TurnRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the aggregate root for one conversational thread.
// Turns are ordered oldest-first and only ever appended.
type Session struct {
	ID           string    `json:"id"`
	Turns        []Turn    `json:"turns"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Turns:        make([]Turn, 0, 8),
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

func (s *Session) AddTurn(role TurnRole, content string) {
	now := time.Now()
	s.Turns = append(s.Turns, Turn{
		SessionID: s.ID,
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	s.LastActiveAt = now
}

// RecentTurns returns up to the n most recent turns, oldest-first.
func (s *Session) RecentTurns(n int) []Turn {
	if n <= 0 || len(s.Turns) <= n {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-n:]
}

// TrimTo drops the oldest turns so at most n remain. Bounds per-session
// memory for stores that hold whole sessions in RAM.
func (s *Session) TrimTo(n int) {
	if n > 0 && len(s.Turns) > n {
		s.Turns = append(s.Turns[:0:0], s.Turns[len(s.Turns)-n:]...)
	}
}
