//go:build !integration

package safety

import (
	"testing"

	"ai-support-companion/internal/domain/model"
)

func TestCrisisDetector_Assess(t *testing.T) {
	d := NewCrisisDetector()

	t.Run("critical phrases match regardless of case", func(t *testing.T) {
		for _, text := range []string{
			"I want to KILL MYSELF",
			"i've been thinking about suicide lately",
			"sometimes I just want to die",
			"I keep wanting to hurt myself",
		} {
			a := d.Assess(text)
			if !a.Matched {
				t.Errorf("expected match for %q", text)
			}
			if a.Severity != model.SeverityCritical {
				t.Errorf("expected critical severity for %q, got %s", text, a.Severity)
			}
			if len(a.MatchedKeywords) == 0 {
				t.Errorf("expected matched keywords for %q", text)
			}
		}
	})

	t.Run("moderate phrases get moderate severity", func(t *testing.T) {
		a := d.Assess("everything feels hopeless and I can't go on")
		if !a.Matched {
			t.Fatal("expected match")
		}
		if a.Severity != model.SeverityModerate {
			t.Fatalf("expected moderate severity, got %s", a.Severity)
		}
	})

	t.Run("critical outranks moderate when both hit", func(t *testing.T) {
		a := d.Assess("I feel hopeless and want to die")
		if a.Severity != model.SeverityCritical {
			t.Fatalf("expected critical severity, got %s", a.Severity)
		}
		if len(a.MatchedKeywords) < 2 {
			t.Fatalf("expected both tiers reported, got %v", a.MatchedKeywords)
		}
	})

	t.Run("clean text does not match", func(t *testing.T) {
		for _, text := range []string{"Hello", "I had a nice day at work", ""} {
			a := d.Assess(text)
			if a.Matched {
				t.Errorf("unexpected match for %q: %v", text, a.MatchedKeywords)
			}
			if a.Severity != model.SeverityNone {
				t.Errorf("expected none severity for %q, got %s", text, a.Severity)
			}
		}
	})
}
