//go:build !integration

package safety

import (
	"strings"
	"testing"
)

func TestResponseValidator_Validate(t *testing.T) {
	v := NewResponseValidator()

	t.Run("accepts a short supportive response", func(t *testing.T) {
		r := v.Validate("That sounds really difficult. I'm here with you.")
		if !r.IsAppropriate {
			t.Fatalf("expected appropriate, issues: %v", r.Issues)
		}
	})

	t.Run("flags harmful phrases", func(t *testing.T) {
		r := v.Validate("You should just get over it, other people have it worse.")
		if r.IsAppropriate {
			t.Fatal("expected inappropriate")
		}
		if len(r.Issues) < 2 {
			t.Fatalf("expected multiple issues, got %v", r.Issues)
		}
	})

	t.Run("flags empty response", func(t *testing.T) {
		r := v.Validate("")
		if r.IsAppropriate {
			t.Fatal("expected inappropriate for empty text")
		}
	})

	t.Run("long response needs engagement", func(t *testing.T) {
		long := strings.Repeat("The weather affects many biological processes. ", 8)
		r := v.Validate(long)
		if r.IsAppropriate {
			t.Fatal("expected engagement issue for long detached text")
		}
	})

	t.Run("a question mark satisfies engagement", func(t *testing.T) {
		long := strings.Repeat("Many things can contribute to how you feel day to day. ", 5) + "What has been weighing on you most?"
		r := v.Validate(long)
		if !r.IsAppropriate {
			t.Fatalf("expected appropriate, issues: %v", r.Issues)
		}
	})

	t.Run("short responses are exempt from engagement", func(t *testing.T) {
		r := v.Validate("Take a slow breath.")
		if !r.IsAppropriate {
			t.Fatalf("expected appropriate, issues: %v", r.Issues)
		}
	})
}
