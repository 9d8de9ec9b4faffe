package safety

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"ai-support-companion/internal/domain/model"
)

// Phrases a supportive response must never contain.
var harmfulPhrases = []string{
	"you should just",
	"get over it",
	"it's not a big deal",
	"stop being dramatic",
	"other people have it worse",
	"you're overreacting",
	"just think positive",
	"snap out of it",
}

// Signals that a longer response actually engages with the user.
var engagementIndicators = []string{
	"i hear",
	"i understand",
	"that sounds",
	"it sounds like",
	"i'm sorry",
	"it makes sense",
	"thank you for sharing",
	"you're not alone",
	"tell me more",
	"how are you",
	"would you like",
}

// ResponseValidator checks generated text for appropriateness. It reports
// issues but never blocks the pipeline; callers decide whether to
// regenerate or prefix a fallback.
type ResponseValidator struct {
	minLen              int
	maxLen              int
	engagementThreshold int
}

func NewResponseValidator() *ResponseValidator {
	return &ResponseValidator{minLen: 2, maxLen: 4000, engagementThreshold: 180}
}

func (v *ResponseValidator) Validate(text string) model.ValidationResult {
	var issues []string
	harmful := false
	normalized := strings.ToLower(text)

	for _, phrase := range harmfulPhrases {
		if strings.Contains(normalized, phrase) {
			harmful = true
			issues = append(issues, fmt.Sprintf("harmful phrase: %q", phrase))
		}
	}

	n := utf8.RuneCountInString(text)
	if n < v.minLen {
		issues = append(issues, fmt.Sprintf("response too short (%d chars)", n))
	}
	if n > v.maxLen {
		issues = append(issues, fmt.Sprintf("response too long (%d chars)", n))
	}

	// Short responses are exempt from the engagement check.
	if n >= v.engagementThreshold && !v.engages(normalized) {
		issues = append(issues, "long response lacks empathy or engagement indicator")
	}

	return model.ValidationResult{IsAppropriate: len(issues) == 0, Harmful: harmful, Issues: issues}
}

func (v *ResponseValidator) engages(normalized string) bool {
	if strings.Contains(normalized, "?") {
		return true
	}
	for _, indicator := range engagementIndicators {
		if strings.Contains(normalized, indicator) {
			return true
		}
	}
	return false
}
