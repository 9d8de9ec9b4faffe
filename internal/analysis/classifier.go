// File: internal/analysis/classifier.go
package analysis

import (
	"strings"

	"ai-support-companion/internal/domain/model"
)

// Classifier is the capability the pipeline depends on. The shipped
// variant is keyword-based; a model-backed variant can replace it without
// touching orchestration.
type Classifier interface {
	DetectEmotions(text string) model.EmotionSet
	AssessNeeds(text string, emotions model.EmotionSet, recent []model.Turn) model.NeedsAssessment
}

var _ Classifier = (*KeywordClassifier)(nil)

// Per-emotion phrase buckets. Matching is case-insensitive substring, so
// "panicking" hits "panic" and "stressed out" hits "stressed".
var emotionBuckets = map[model.Emotion][]string{
	model.EmotionAnxiety: {
		"anxious", "anxiety", "panic", "worried", "worry", "nervous",
		"on edge", "racing thoughts", "can't stop thinking", "afraid", "scared",
	},
	model.EmotionDepression: {
		"depressed", "depression", "sad all the time", "empty", "numb",
		"no energy", "can't get out of bed", "nothing brings me joy", "crying",
		"miserable", "down lately",
	},
	model.EmotionStress: {
		"stressed", "stress", "overwhelmed", "too much pressure", "burned out",
		"burnout", "exhausted", "can't keep up", "deadline", "overloaded",
	},
	model.EmotionAnger: {
		"angry", "anger", "furious", "rage", "irritated", "frustrated",
		"fed up", "losing my temper", "pissed off",
	},
	model.EmotionLoneliness: {
		"lonely", "loneliness", "alone", "isolated", "no one to talk to",
		"nobody understands", "no friends", "left out", "abandoned",
	},
}

// Explicit requests for help with a problem.
var helpRequestPhrases = []string{
	"help me", "i need help", "what should i do", "what can i do",
	"how do i cope", "how can i deal", "any advice", "please help",
	"i don't know what to do",
}

// Distress intensity tiers mapped to urgency.
var highUrgencyPhrases = []string{
	"can't take it anymore", "unbearable", "falling apart", "breaking down",
	"desperate", "at my limit", "crisis", "emergency", "right now",
}

var mediumUrgencyPhrases = []string{
	"getting worse", "every day", "all the time", "for weeks", "for months",
	"constantly", "really struggling", "can't sleep", "can't eat",
}

// Phrasing that points at professional care.
var professionalPhrases = []string{
	"therapist", "therapy", "counselor", "counseling", "psychologist",
	"psychiatrist", "medication", "professional help", "see a doctor",
}

// Named clinical terms that suggest specialized resources.
var specializedPhrases = []string{
	"ptsd", "trauma", "eating disorder", "anorexia", "bulimia", "ocd",
	"bipolar", "addiction", "panic attack", "panic attacks",
}

// KeywordClassifier is the lexical Classifier variant.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier { return &KeywordClassifier{} }

// DetectEmotions runs multi-label matching: a message may match zero, one,
// or several buckets.
func (c *KeywordClassifier) DetectEmotions(text string) model.EmotionSet {
	normalized := strings.ToLower(text)
	out := make(model.EmotionSet)
	for label, phrases := range emotionBuckets {
		for _, phrase := range phrases {
			if strings.Contains(normalized, phrase) {
				out.Add(label)
				break
			}
		}
	}
	return out
}

// AssessNeeds layers three independent signals: explicit help requests,
// distress intensity, and professional-help phrasing.
func (c *KeywordClassifier) AssessNeeds(text string, emotions model.EmotionSet, recent []model.Turn) model.NeedsAssessment {
	normalized := strings.ToLower(text)

	needs := model.NeedsAssessment{
		Urgency:      model.UrgencyLow,
		ResourceType: model.ResourcePreventive,
	}

	needs.HasExplicitHelpRequest = containsAny(normalized, helpRequestPhrases)

	switch {
	case containsAny(normalized, highUrgencyPhrases):
		needs.Urgency = model.UrgencyHigh
	case containsAny(normalized, mediumUrgencyPhrases):
		needs.Urgency = model.UrgencyMedium
	case c.persistsAcrossTurns(emotions, recent):
		// The same distress recurring over the session window reads as
		// more pressing than a one-off mention.
		needs.Urgency = model.UrgencyMedium
	}

	// Any detected emotion or an explicit request means coping guidance
	// is worth offering.
	needs.NeedsCoping = len(emotions) > 0 || needs.HasExplicitHelpRequest

	wantsProfessional := containsAny(normalized, professionalPhrases)
	needs.NeedsProfessionalHelp = wantsProfessional || needs.Urgency == model.UrgencyHigh

	// Resource tier priority: immediate > therapy > specialized > preventive.
	switch {
	case needs.Urgency == model.UrgencyHigh:
		needs.ResourceType = model.ResourceImmediate
	case wantsProfessional:
		needs.ResourceType = model.ResourceTherapy
	case containsAny(normalized, specializedPhrases):
		needs.ResourceType = model.ResourceSpecialized
	}

	return needs
}

// persistsAcrossTurns reports whether any currently detected emotion also
// appears in an earlier user turn of the session window.
func (c *KeywordClassifier) persistsAcrossTurns(emotions model.EmotionSet, recent []model.Turn) bool {
	if len(emotions) == 0 {
		return false
	}
	for _, turn := range recent {
		if turn.Role != model.RoleUser {
			continue
		}
		past := c.DetectEmotions(turn.Content)
		for label := range emotions {
			if past.Has(label) {
				return true
			}
		}
	}
	return false
}

func containsAny(normalized string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}
