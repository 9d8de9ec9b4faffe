//go:build !integration

package enhance

import (
	"strings"
	"testing"

	"ai-support-companion/internal/domain/model"
)

func emotions(labels ...model.Emotion) model.EmotionSet {
	s := make(model.EmotionSet)
	for _, l := range labels {
		s.Add(l)
	}
	return s
}

func TestEnhancer_Build(t *testing.T) {
	e := NewEnhancer()

	t.Run("caps coping strategies at three", func(t *testing.T) {
		needs := model.NeedsAssessment{NeedsCoping: true, Urgency: model.UrgencyLow, ResourceType: model.ResourcePreventive}
		b := e.Build(emotions(model.EmotionAnxiety, model.EmotionStress, model.EmotionDepression), needs)
		if len(b.CopingStrategies) != 3 {
			t.Fatalf("expected 3 strategies, got %d", len(b.CopingStrategies))
		}
	})

	t.Run("high urgency keeps only immediate strategies", func(t *testing.T) {
		needs := model.NeedsAssessment{NeedsCoping: true, Urgency: model.UrgencyHigh, ResourceType: model.ResourceImmediate}
		b := e.Build(emotions(model.EmotionAnxiety), needs)
		for _, s := range b.CopingStrategies {
			if s.Immediacy != model.ImmediacyImmediate {
				t.Fatalf("expected only immediate strategies, got %s (%s)", s.Name, s.Immediacy)
			}
		}
		if b.Resources == nil || len(b.Resources.Lines) == 0 {
			t.Fatal("expected immediate resource group")
		}
		if len(b.Resources.Lines) > 3 {
			t.Fatalf("resource lines not capped: %d", len(b.Resources.Lines))
		}
	})

	t.Run("therapy resource tier", func(t *testing.T) {
		needs := model.NeedsAssessment{NeedsProfessionalHelp: true, Urgency: model.UrgencyLow, ResourceType: model.ResourceTherapy}
		b := e.Build(emotions(), needs)
		if b.Resources == nil || b.Resources.Title != "Finding professional support" {
			t.Fatalf("expected therapy resources, got %+v", b.Resources)
		}
	})

	t.Run("follow-ups capped at two", func(t *testing.T) {
		needs := model.NeedsAssessment{NeedsCoping: true, Urgency: model.UrgencyLow, ResourceType: model.ResourcePreventive}
		b := e.Build(emotions(model.EmotionAnxiety, model.EmotionStress, model.EmotionAnger), needs)
		if len(b.FollowUps) != 2 {
			t.Fatalf("expected 2 follow-ups, got %d", len(b.FollowUps))
		}
	})

	t.Run("explicit help request attaches preventive resources", func(t *testing.T) {
		needs := model.NeedsAssessment{
			NeedsCoping:            true,
			HasExplicitHelpRequest: true,
			Urgency:                model.UrgencyLow,
			ResourceType:           model.ResourcePreventive,
		}
		b := e.Build(emotions(model.EmotionStress), needs)
		if b.Resources == nil || b.Resources.Title != "Everyday wellbeing" {
			t.Fatalf("expected preventive resources, got %+v", b.Resources)
		}
	})

	t.Run("no emotions and no needs yields empty bundle", func(t *testing.T) {
		b := e.Build(emotions(), model.NeedsAssessment{Urgency: model.UrgencyLow, ResourceType: model.ResourcePreventive})
		if !b.Empty() {
			t.Fatalf("expected empty bundle, got %+v", b)
		}
	})
}

func TestEnhancer_Apply(t *testing.T) {
	e := NewEnhancer()
	needs := model.NeedsAssessment{NeedsCoping: true, Urgency: model.UrgencyMedium, ResourceType: model.ResourceTherapy, NeedsProfessionalHelp: true}
	set := emotions(model.EmotionAnxiety)
	bundle := e.Build(set, needs)

	t.Run("adds all sections to plain text", func(t *testing.T) {
		out := e.Apply("That sounds hard.", bundle)
		if !strings.Contains(out, "Your feelings are valid") {
			t.Error("missing validation line")
		}
		if !strings.Contains(out, "might help:") {
			t.Error("missing coping section")
		}
		if !strings.Contains(out, "Finding professional support") {
			t.Error("missing resources")
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := e.Apply("That sounds hard.", bundle)
		twice := e.Apply(once, bundle)
		if once != twice {
			t.Fatalf("second apply changed text:\n--- once ---\n%s\n--- twice ---\n%s", once, twice)
		}
	})

	t.Run("skips categories already present in raw text", func(t *testing.T) {
		raw := "It's okay to feel this way. You could try breathing exercises. The 988 line is there if needed."
		out := e.Apply(raw, bundle)
		if strings.Contains(out, "Your feelings are valid") {
			t.Error("validation line duplicated")
		}
		if strings.Contains(out, "might help:") {
			t.Error("coping section duplicated")
		}
		if strings.Contains(out, "Finding professional support") {
			t.Error("resources duplicated")
		}
	})

	t.Run("empty bundle leaves text untouched", func(t *testing.T) {
		if got := e.Apply("hello", model.EnhancementBundle{}); got != "hello" {
			t.Fatalf("expected unchanged text, got %q", got)
		}
	})
}
