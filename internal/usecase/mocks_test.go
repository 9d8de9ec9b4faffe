// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"
	"time"

	"ai-support-companion/internal/domain/model"
	"ai-support-companion/internal/domain/ports/adapter"
)

// memSessionStore is a small in-memory implementation used by unit tests.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*model.Session)}
}

func (m *memSessionStore) GetOrCreate(ctx context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = model.NewSession(id)
		m.sessions[id] = s
	}
	cp := *s
	cp.Turns = append([]model.Turn(nil), s.Turns...)
	return &cp, nil
}

func (m *memSessionStore) Append(ctx context.Context, id string, turns ...model.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = model.NewSession(id)
		m.sessions[id] = s
	}
	s.Turns = append(s.Turns, turns...)
	s.LastActiveAt = time.Now()
	return nil
}

func (m *memSessionStore) Recent(ctx context.Context, id string, k int) ([]model.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return append([]model.Turn(nil), s.RecentTurns(k)...), nil
}

func (m *memSessionStore) Clear(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memSessionStore) Sweep(ctx context.Context, idleSince time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastActiveAt.Before(idleSince) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memSessionStore) turnCount(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return len(s.Turns)
	}
	return 0
}

// fakeGen returns a canned reply and counts calls.
type fakeGen struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
}

func (g *fakeGen) Generate(ctx context.Context, req adapter.GenerationRequest) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *fakeGen) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// recordingSink captures alerts for assertions.
type recordingSink struct {
	mu     sync.Mutex
	alerts []adapter.CrisisAlert
}

func (s *recordingSink) Notify(ctx context.Context, a adapter.CrisisAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, a)
	return nil
}

func (s *recordingSink) received() []adapter.CrisisAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]adapter.CrisisAlert(nil), s.alerts...)
}

// denyingLimiter rejects every message.
type denyingLimiter struct{}

func (denyingLimiter) Allow(ctx context.Context, sessionID string) (bool, error) {
	return false, nil
}

// erroringLimiter simulates a limiter backend outage.
type erroringLimiter struct {
	err error
}

func (l erroringLimiter) Allow(ctx context.Context, sessionID string) (bool, error) {
	return false, l.err
}

// brokenStore fails every append while the rest of the store keeps working.
type brokenStore struct {
	*memSessionStore
	appendErr error
}

func (s *brokenStore) Append(ctx context.Context, id string, turns ...model.Turn) error {
	return s.appendErr
}
