package model

// CrisisSeverity tiers a crisis assessment by keyword tier.
type CrisisSeverity string

const (
	SeverityNone     CrisisSeverity = "none"
	SeverityModerate CrisisSeverity = "moderate"
	SeverityCritical CrisisSeverity = "critical"
)

// CrisisAssessment is a pure function of one input text.
type CrisisAssessment struct {
	Matched         bool           `json:"matched"`
	Severity        CrisisSeverity `json:"severity"`
	MatchedKeywords []string       `json:"matched_keywords,omitempty"`
}

// Emotion labels form a fixed, non-exclusive taxonomy. A message may carry
// zero, one, or several of them.
type Emotion string

const (
	EmotionAnxiety    Emotion = "anxiety"
	EmotionDepression Emotion = "depression"
	EmotionStress     Emotion = "stress"
	EmotionAnger      Emotion = "anger"
	EmotionLoneliness Emotion = "loneliness"
)

// EmotionSet is the multi-label detection result.
type EmotionSet map[Emotion]struct{}

func (e EmotionSet) Has(label Emotion) bool {
	_, ok := e[label]
	return ok
}

func (e EmotionSet) Add(label Emotion) { e[label] = struct{}{} }

// Labels returns the set in taxonomy order (stable for logs and tests).
func (e EmotionSet) Labels() []Emotion {
	order := []Emotion{EmotionAnxiety, EmotionDepression, EmotionStress, EmotionAnger, EmotionLoneliness}
	out := make([]Emotion, 0, len(e))
	for _, l := range order {
		if e.Has(l) {
			out = append(out, l)
		}
	}
	return out
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

type ResourceType string

const (
	ResourcePreventive  ResourceType = "preventive"
	ResourceTherapy     ResourceType = "therapy"
	ResourceSpecialized ResourceType = "specialized"
	ResourceImmediate   ResourceType = "immediate"
)

// NeedsAssessment is derived deterministically from text plus emotions.
type NeedsAssessment struct {
	NeedsCoping            bool         `json:"needs_coping"`
	NeedsProfessionalHelp  bool         `json:"needs_professional_help"`
	Urgency                Urgency      `json:"urgency"`
	ResourceType           ResourceType `json:"resource_type"`
	HasExplicitHelpRequest bool         `json:"has_explicit_help_request"`
}

// ValidationResult reports appropriateness checks on generated text.
// Issues are informational; callers decide what to do with them.
type ValidationResult struct {
	IsAppropriate bool     `json:"is_appropriate"`
	Harmful       bool     `json:"harmful,omitempty"`
	Issues        []string `json:"issues,omitempty"`
}
