// File: internal/infra/store/memory/session_store.go
package memory

import (
	"context"
	"sync"
	"time"

	"ai-support-companion/internal/domain/model"
	"ai-support-companion/internal/domain/ports/repository"
	"ai-support-companion/internal/infra/metrics"
)

// Compile-time check
var _ repository.SessionStore = (*SessionStore)(nil)

// entry guards one session with its own mutex so concurrent requests for
// the same session serialize without blocking other sessions.
type entry struct {
	mu      sync.Mutex
	session *model.Session
}

// SessionStore keeps all sessions in process memory. Growth is bounded
// two ways: per-session turn retention and the idle sweep.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	maxTurns int
}

func NewSessionStore(maxTurns int) *SessionStore {
	if maxTurns <= 0 {
		maxTurns = 50
	}
	return &SessionStore{
		sessions: make(map[string]*entry),
		maxTurns: maxTurns,
	}
}

func (s *SessionStore) getEntry(id string) *entry {
	s.mu.RLock()
	e := s.sessions[id]
	s.mu.RUnlock()
	if e != nil {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e = s.sessions[id]; e == nil {
		e = &entry{session: model.NewSession(id)}
		s.sessions[id] = e
		metrics.SetActiveSessions(len(s.sessions))
	}
	return e
}

func (s *SessionStore) GetOrCreate(ctx context.Context, id string) (*model.Session, error) {
	e := s.getEntry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.session), nil
}

func (s *SessionStore) Append(ctx context.Context, id string, turns ...model.Turn) error {
	e := s.getEntry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range turns {
		e.session.AddTurn(t.Role, t.Content)
	}
	e.session.TrimTo(s.maxTurns)
	return nil
}

func (s *SessionStore) Recent(ctx context.Context, id string, k int) ([]model.Turn, error) {
	s.mu.RLock()
	e := s.sessions[id]
	s.mu.RUnlock()
	if e == nil {
		return nil, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	recent := e.session.RecentTurns(k)
	out := make([]model.Turn, len(recent))
	copy(out, recent)
	return out, nil
}

func (s *SessionStore) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	metrics.SetActiveSessions(len(s.sessions))
	return nil
}

// Sweep evicts sessions whose last activity predates the cutoff.
func (s *SessionStore) Sweep(ctx context.Context, idleSince time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		idle := e.session.LastActiveAt.Before(idleSince)
		e.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.SetActiveSessions(len(s.sessions))
		metrics.AddSweptSessions(removed)
	}
	return removed, nil
}

// Len reports the current session count (used by tests and the sweeper log).
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// snapshot copies the session so callers never alias store-owned state.
func snapshot(in *model.Session) *model.Session {
	out := *in
	out.Turns = make([]model.Turn, len(in.Turns))
	copy(out.Turns, in.Turns)
	return &out
}
