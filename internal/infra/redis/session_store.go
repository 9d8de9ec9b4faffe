// File: internal/infra/redis/session_store.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"ai-support-companion/internal/domain/model"
	"ai-support-companion/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.SessionStore = (*SessionStore)(nil)

const sessionKeyPrefix = "support_session:"

// SessionStore persists whole sessions as JSON blobs with a TTL, so idle
// eviction comes from redis itself and Sweep is a no-op. Appends are a
// read-modify-write guarded by a per-session lock, which also serializes
// concurrent writers across instances.
type SessionStore struct {
	client   *Client
	locker   Locker
	ttl      time.Duration
	maxTurns int
}

func NewSessionStore(client *Client, locker Locker, ttl time.Duration, maxTurns int) *SessionStore {
	if maxTurns <= 0 {
		maxTurns = 50
	}
	return &SessionStore{client: client, locker: locker, ttl: ttl, maxTurns: maxTurns}
}

func key(id string) string { return sessionKeyPrefix + id }

func (s *SessionStore) GetOrCreate(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = model.NewSession(id)
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func (s *SessionStore) Append(ctx context.Context, id string, turns ...model.Turn) error {
	token, err := s.locker.TryLock(ctx, "lock:"+key(id), 5*time.Second)
	if err != nil {
		return fmt.Errorf("lock session %s: %w", id, err)
	}
	defer func() { _ = s.locker.Unlock(ctx, "lock:"+key(id), token) }()

	session, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if session == nil {
		session = model.NewSession(id)
	}
	for _, t := range turns {
		session.AddTurn(t.Role, t.Content)
	}
	session.TrimTo(s.maxTurns)
	return s.save(ctx, session)
}

func (s *SessionStore) Recent(ctx context.Context, id string, k int) ([]model.Turn, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return session.RecentTurns(k), nil
}

func (s *SessionStore) Clear(ctx context.Context, id string) error {
	return s.client.Del(ctx, key(id))
}

// Sweep is satisfied by the key TTL; redis expires idle sessions itself.
func (s *SessionStore) Sweep(ctx context.Context, idleSince time.Time) (int, error) {
	return 0, nil
}

func (s *SessionStore) load(ctx context.Context, id string) (*model.Session, error) {
	data, err := s.client.Get(ctx, key(id))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

func (s *SessionStore) save(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	return s.client.Set(ctx, key(session.ID), data, s.ttl)
}
