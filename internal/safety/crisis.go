// File: internal/safety/crisis.go
package safety

import (
	"strings"

	"ai-support-companion/internal/domain/model"
)

// Crisis keyword tiers. These are a heuristic safety net, not a clinical
// diagnosis; the lists are intentionally conservative and case-insensitive
// substring matched so phrasing variations still hit.
var criticalPhrases = []string{
	"kill myself",
	"suicide",
	"suicidal",
	"end my life",
	"ending my life",
	"want to die",
	"wish i was dead",
	"hurt myself",
	"harm myself",
	"self harm",
	"self-harm",
	"better off dead",
	"no reason to live",
}

var moderatePhrases = []string{
	"hopeless",
	"worthless",
	"can't go on",
	"cannot go on",
	"give up on everything",
	"giving up on everything",
	"nothing matters anymore",
	"no way out",
	"everyone would be better without me",
}

// CrisisDetector performs lexical crisis screening. It is pure and runs
// before any network call so detection cannot be bypassed by upstream
// failure.
type CrisisDetector struct {
	critical []string
	moderate []string
}

func NewCrisisDetector() *CrisisDetector {
	return &CrisisDetector{critical: criticalPhrases, moderate: moderatePhrases}
}

// Assess scans text against both keyword tiers. Severity reflects the
// highest tier hit; matched keywords from both tiers are reported.
func (d *CrisisDetector) Assess(text string) model.CrisisAssessment {
	normalized := strings.ToLower(text)

	var matched []string
	severity := model.SeverityNone

	for _, phrase := range d.critical {
		if strings.Contains(normalized, phrase) {
			matched = append(matched, phrase)
			severity = model.SeverityCritical
		}
	}
	for _, phrase := range d.moderate {
		if strings.Contains(normalized, phrase) {
			matched = append(matched, phrase)
			if severity == model.SeverityNone {
				severity = model.SeverityModerate
			}
		}
	}

	return model.CrisisAssessment{
		Matched:         len(matched) > 0,
		Severity:        severity,
		MatchedKeywords: matched,
	}
}
