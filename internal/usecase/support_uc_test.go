// File: internal/usecase/support_uc_test.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"ai-support-companion/internal/analysis"
	"ai-support-companion/internal/domain"
	"ai-support-companion/internal/domain/model"
	"ai-support-companion/internal/domain/ports/repository"
	"ai-support-companion/internal/enhance"
	"ai-support-companion/internal/infra/i18n"
	"ai-support-companion/internal/safety"
)

func newTestUC(t *testing.T, store repository.SessionStore, gen *fakeGen, sink *recordingSink, limiter RateLimiter) *supportUC {
	t.Helper()
	tr, err := i18n.NewTranslator(i18n.LocalesFS)
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	log := zerolog.Nop()
	return NewSupportUseCase(
		store,
		gen,
		safety.NewCrisisDetector(),
		safety.NewResponseValidator(),
		analysis.NewKeywordClassifier(),
		enhance.NewEnhancer(),
		NewPromptBuilder(12, 2048),
		sink,
		tr,
		limiter,
		12,
		&log,
	)
}

func TestProcessMessage_CrisisShortCircuit(t *testing.T) {
	store := newMemSessionStore()
	gen := &fakeGen{reply: "should never be used"}
	sink := &recordingSink{}
	uc := newTestUC(t, store, gen, sink, nil)

	reply, err := uc.ProcessMessage(context.Background(), "s1", "I want to kill myself", "en")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if !reply.IsCrisis {
		t.Fatal("expected crisis reply")
	}
	if gen.callCount() != 0 {
		t.Fatalf("generator called %d times on crisis path", gen.callCount())
	}
	if !strings.Contains(reply.Text, "988") {
		t.Errorf("crisis reply missing hotline: %q", reply.Text)
	}
	if len(reply.CrisisResources) == 0 {
		t.Error("expected crisis resources in reply")
	}
	if reply.Needs.Urgency != model.UrgencyHigh || reply.Needs.ResourceType != model.ResourceImmediate {
		t.Errorf("crisis needs not populated: %+v", reply.Needs)
	}

	alerts := sink.received()
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	a := alerts[0]
	if a.Severity != model.SeverityCritical {
		t.Errorf("alert severity = %q, want critical", a.Severity)
	}
	if a.EventID == "" || a.SessionID != "s1" {
		t.Errorf("alert ids = %q / %q", a.EventID, a.SessionID)
	}
	if got := store.turnCount("s1"); got != 2 {
		t.Errorf("turn count = %d, want 2", got)
	}
}

func TestProcessMessage_PlainGreeting(t *testing.T) {
	store := newMemSessionStore()
	gen := &fakeGen{reply: "Hi there! How are you feeling today?"}
	uc := newTestUC(t, store, gen, &recordingSink{}, nil)

	reply, err := uc.ProcessMessage(context.Background(), "s1", "Hello", "en")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if reply.IsCrisis {
		t.Fatal("greeting flagged as crisis")
	}
	if reply.Text == "" {
		t.Fatal("empty reply text")
	}
	if gen.callCount() != 1 {
		t.Errorf("generator calls = %d, want 1", gen.callCount())
	}
	if got := store.turnCount("s1"); got != 2 {
		t.Errorf("turn count = %d, want 2", got)
	}
}

func TestProcessMessage_EmptyText(t *testing.T) {
	store := newMemSessionStore()
	gen := &fakeGen{reply: "unused"}
	uc := newTestUC(t, store, gen, &recordingSink{}, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := uc.ProcessMessage(context.Background(), "s1", text, "en"); !errors.Is(err, domain.ErrEmptyMessage) {
			t.Errorf("text %q: err = %v, want ErrEmptyMessage", text, err)
		}
	}
	if gen.callCount() != 0 {
		t.Errorf("generator called for empty input")
	}
	if got := store.turnCount("s1"); got != 0 {
		t.Errorf("turns appended for empty input: %d", got)
	}
}

func TestProcessMessage_RateLimited(t *testing.T) {
	store := newMemSessionStore()
	uc := newTestUC(t, store, &fakeGen{reply: "unused"}, &recordingSink{}, denyingLimiter{})

	if _, err := uc.ProcessMessage(context.Background(), "s1", "Hello", "en"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
	if got := store.turnCount("s1"); got != 0 {
		t.Errorf("turns appended despite rate limit: %d", got)
	}
}

func TestProcessMessage_EnhancesAnxiousMessage(t *testing.T) {
	store := newMemSessionStore()
	gen := &fakeGen{reply: "That sounds really hard."}
	uc := newTestUC(t, store, gen, &recordingSink{}, nil)

	reply, err := uc.ProcessMessage(context.Background(), "s1",
		"I'm so anxious about everything, I need help", "en")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	found := false
	for _, e := range reply.Emotions {
		if e == model.EmotionAnxiety {
			found = true
		}
	}
	if !found {
		t.Errorf("emotions = %v, want anxiety", reply.Emotions)
	}
	if !reply.Needs.NeedsCoping || !reply.Needs.HasExplicitHelpRequest {
		t.Errorf("needs = %+v, want coping + explicit help request", reply.Needs)
	}
	if len(reply.Enhancements.CopingStrategies) == 0 {
		t.Error("expected coping strategies in bundle")
	}
	if len(reply.Text) <= len(gen.reply) {
		t.Errorf("reply text not enhanced: %q", reply.Text)
	}
}

func TestProcessMessage_StoreFailureDoesNotBlockReply(t *testing.T) {
	t.Run("crisis path", func(t *testing.T) {
		store := &brokenStore{memSessionStore: newMemSessionStore(), appendErr: errors.New("lock busy")}
		gen := &fakeGen{reply: "should never be used"}
		uc := newTestUC(t, store, gen, &recordingSink{}, nil)

		reply, err := uc.ProcessMessage(context.Background(), "s1", "I want to kill myself", "en")
		if err != nil {
			t.Fatalf("ProcessMessage: %v", err)
		}
		if !reply.IsCrisis {
			t.Fatal("expected crisis reply")
		}
		if !strings.Contains(reply.Text, "988") {
			t.Errorf("crisis reply missing hotline: %q", reply.Text)
		}
	})

	t.Run("generation path", func(t *testing.T) {
		store := &brokenStore{memSessionStore: newMemSessionStore(), appendErr: errors.New("connection refused")}
		gen := &fakeGen{reply: "I'm listening."}
		uc := newTestUC(t, store, gen, &recordingSink{}, nil)

		reply, err := uc.ProcessMessage(context.Background(), "s1", "Hello", "en")
		if err != nil {
			t.Fatalf("ProcessMessage: %v", err)
		}
		if reply.Text == "" {
			t.Fatal("finalized reply dropped on store failure")
		}
	})
}

func TestProcessMessage_LimiterOutageFailsOpen(t *testing.T) {
	store := newMemSessionStore()
	gen := &fakeGen{reply: "I'm listening."}
	uc := newTestUC(t, store, gen, &recordingSink{}, erroringLimiter{err: errors.New("connection refused")})

	reply, err := uc.ProcessMessage(context.Background(), "s1", "Hello", "en")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if reply.Text == "" {
		t.Fatal("expected a reply despite limiter outage")
	}
	if gen.callCount() != 1 {
		t.Errorf("generator calls = %d, want 1", gen.callCount())
	}
}

func TestProcessMessage_HarmfulResponseReplaced(t *testing.T) {
	store := newMemSessionStore()
	gen := &fakeGen{reply: "You should just get over it."}
	uc := newTestUC(t, store, gen, &recordingSink{}, nil)

	reply, err := uc.ProcessMessage(context.Background(), "s1", "I'm sad", "en")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if strings.Contains(reply.Text, "get over it") {
		t.Errorf("harmful text reached the user: %q", reply.Text)
	}
}

func TestProcessMessage_GeneratorErrorPropagates(t *testing.T) {
	store := newMemSessionStore()
	gen := &fakeGen{err: context.Canceled}
	uc := newTestUC(t, store, gen, &recordingSink{}, nil)

	if _, err := uc.ProcessMessage(context.Background(), "s1", "Hello", "en"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got := store.turnCount("s1"); got != 0 {
		t.Errorf("turns appended after failed generation: %d", got)
	}
}

func TestProcessMessage_SessionIsolation(t *testing.T) {
	store := newMemSessionStore()
	gen := &fakeGen{reply: "I'm listening."}
	uc := newTestUC(t, store, gen, &recordingSink{}, nil)

	for i := 0; i < 3; i++ {
		if _, err := uc.ProcessMessage(context.Background(), "a", "I feel stressed", "en"); err != nil {
			t.Fatalf("session a: %v", err)
		}
	}
	if _, err := uc.ProcessMessage(context.Background(), "b", "Hello", "en"); err != nil {
		t.Fatalf("session b: %v", err)
	}
	if got := store.turnCount("a"); got != 6 {
		t.Errorf("session a turns = %d, want 6", got)
	}
	if got := store.turnCount("b"); got != 2 {
		t.Errorf("session b turns = %d, want 2", got)
	}
}

func TestClearSession(t *testing.T) {
	store := newMemSessionStore()
	uc := newTestUC(t, store, &fakeGen{reply: "Hi."}, &recordingSink{}, nil)

	if _, err := uc.ProcessMessage(context.Background(), "s1", "Hello", "en"); err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if err := uc.ClearSession(context.Background(), "s1"); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if got := store.turnCount("s1"); got != 0 {
		t.Errorf("turns after clear = %d, want 0", got)
	}
}
