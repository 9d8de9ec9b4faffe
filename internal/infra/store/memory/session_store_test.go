//go:build !integration

package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-support-companion/internal/domain/model"
)

func TestSessionStore_Basics(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(50)

	t.Run("GetOrCreate creates on first use", func(t *testing.T) {
		s, err := store.GetOrCreate(ctx, "a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ID != "a" || len(s.Turns) != 0 {
			t.Fatalf("unexpected session: %+v", s)
		}
	})

	t.Run("Append adds user and assistant turns as a unit", func(t *testing.T) {
		err := store.Append(ctx, "a",
			model.Turn{Role: model.RoleUser, Content: "hello"},
			model.Turn{Role: model.RoleAssistant, Content: "hi"},
		)
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		turns, _ := store.Recent(ctx, "a", 10)
		if len(turns) != 2 {
			t.Fatalf("expected 2 turns, got %d", len(turns))
		}
		if turns[0].Role != model.RoleUser || turns[1].Role != model.RoleAssistant {
			t.Fatalf("turn order wrong: %+v", turns)
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		_ = store.Append(ctx, "b", model.Turn{Role: model.RoleUser, Content: "other"})
		aTurns, _ := store.Recent(ctx, "a", 10)
		bTurns, _ := store.Recent(ctx, "b", 10)
		for _, turn := range aTurns {
			if turn.Content == "other" {
				t.Fatal("session a observed session b's turn")
			}
		}
		if len(bTurns) != 1 {
			t.Fatalf("expected 1 turn in b, got %d", len(bTurns))
		}
	})

	t.Run("Recent bounds the window", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			_ = store.Append(ctx, "c", model.Turn{Role: model.RoleUser, Content: fmt.Sprintf("m%d", i)})
		}
		turns, _ := store.Recent(ctx, "c", 5)
		if len(turns) != 5 {
			t.Fatalf("expected 5 turns, got %d", len(turns))
		}
		if turns[4].Content != "m19" {
			t.Fatalf("expected newest last, got %q", turns[4].Content)
		}
	})

	t.Run("Recent on missing session is empty, not an error", func(t *testing.T) {
		turns, err := store.Recent(ctx, "nope", 5)
		if err != nil || len(turns) != 0 {
			t.Fatalf("expected empty, got %v %v", turns, err)
		}
	})

	t.Run("Clear removes the session", func(t *testing.T) {
		_ = store.Clear(ctx, "a")
		turns, _ := store.Recent(ctx, "a", 10)
		if len(turns) != 0 {
			t.Fatalf("expected cleared session, got %d turns", len(turns))
		}
	})
}

func TestSessionStore_TurnRetention(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(4)
	for i := 0; i < 10; i++ {
		_ = store.Append(ctx, "s", model.Turn{Role: model.RoleUser, Content: fmt.Sprintf("m%d", i)})
	}
	turns, _ := store.Recent(ctx, "s", 100)
	if len(turns) != 4 {
		t.Fatalf("expected retention cap of 4, got %d", len(turns))
	}
	if turns[0].Content != "m6" {
		t.Fatalf("expected oldest retained to be m6, got %q", turns[0].Content)
	}
}

func TestSessionStore_Sweep(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(50)

	_ = store.Append(ctx, "old", model.Turn{Role: model.RoleUser, Content: "hi"})
	time.Sleep(10 * time.Millisecond)
	cutoff := time.Now()
	_ = store.Append(ctx, "fresh", model.Turn{Role: model.RoleUser, Content: "hi"})

	removed, err := store.Sweep(ctx, cutoff)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 swept session, got %d", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 remaining session, got %d", store.Len())
	}
	if turns, _ := store.Recent(ctx, "fresh", 10); len(turns) != 1 {
		t.Fatal("fresh session should survive the sweep")
	}
}

func TestSessionStore_ConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(200)

	const sessions = 16
	const perSession = 20
	var wg sync.WaitGroup
	wg.Add(sessions)
	for i := 0; i < sessions; i++ {
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", n)
			for j := 0; j < perSession; j++ {
				_ = store.Append(ctx, id,
					model.Turn{Role: model.RoleUser, Content: "u"},
					model.Turn{Role: model.RoleAssistant, Content: "a"},
				)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < sessions; i++ {
		turns, _ := store.Recent(ctx, fmt.Sprintf("s%d", i), 1000)
		if len(turns) != perSession*2 {
			t.Fatalf("session s%d: expected %d turns, got %d", i, perSession*2, len(turns))
		}
	}
}
