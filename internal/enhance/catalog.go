// File: internal/enhance/catalog.go
package enhance

import "ai-support-companion/internal/domain/model"

// Fixed coping catalog keyed by emotion. Selection filters by immediacy
// derived from urgency and caps at three strategies.
var copingCatalog = map[model.Emotion][]model.CopingStrategy{
	model.EmotionAnxiety: {
		{Name: "Box breathing", Description: "Breathe in for 4, hold for 4, out for 4, hold for 4. Repeat a few times.", Immediacy: model.ImmediacyImmediate},
		{Name: "5-4-3-2-1 grounding", Description: "Name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste.", Immediacy: model.ImmediacyImmediate},
		{Name: "Worry window", Description: "Set aside 15 minutes a day for worries, and gently postpone them until then.", Immediacy: model.ImmediacyShortTerm},
		{Name: "Gradual exposure", Description: "Approach what makes you anxious in small, planned steps.", Immediacy: model.ImmediacyLongTerm},
	},
	model.EmotionDepression: {
		{Name: "One small step", Description: "Pick one tiny achievable action, like opening a window or making tea.", Immediacy: model.ImmediacyImmediate},
		{Name: "Behavioral activation", Description: "Schedule one activity you used to enjoy, even if it feels pointless right now.", Immediacy: model.ImmediacyShortTerm},
		{Name: "Daylight routine", Description: "Try to get outside in daylight at roughly the same time each day.", Immediacy: model.ImmediacyLongTerm},
	},
	model.EmotionStress: {
		{Name: "Physiological sigh", Description: "Two quick inhales through the nose, then one long exhale through the mouth.", Immediacy: model.ImmediacyImmediate},
		{Name: "Brain dump", Description: "Write everything on your mind onto paper, then pick just the top item.", Immediacy: model.ImmediacyShortTerm},
		{Name: "Boundaries review", Description: "List the commitments draining you most and choose one to renegotiate.", Immediacy: model.ImmediacyLongTerm},
	},
	model.EmotionAnger: {
		{Name: "Pause and count", Description: "Before responding, count slowly to ten while unclenching your jaw and hands.", Immediacy: model.ImmediacyImmediate},
		{Name: "Physical release", Description: "A brisk walk or a few minutes of exercise helps discharge the surge.", Immediacy: model.ImmediacyShortTerm},
		{Name: "Trigger journal", Description: "Track what sets off your anger to spot the pattern behind it.", Immediacy: model.ImmediacyLongTerm},
	},
	model.EmotionLoneliness: {
		{Name: "Reach out once", Description: "Send one short message to someone you haven't spoken to in a while.", Immediacy: model.ImmediacyImmediate},
		{Name: "Shared activity", Description: "Join one group activity this week, even a small or online one.", Immediacy: model.ImmediacyShortTerm},
		{Name: "Community roots", Description: "Look for a recurring local group built around something you enjoy.", Immediacy: model.ImmediacyLongTerm},
	},
}

// Four-tier professional resource catalog. One group, at most three lines,
// is attached per response.
var resourceCatalog = map[model.ResourceType]model.ResourceGroup{
	model.ResourceImmediate: {
		Title: "Immediate support",
		Lines: []string{
			"988 Suicide & Crisis Lifeline: call or text 988 (US), available 24/7",
			"Crisis Text Line: text HOME to 741741",
			"If you are in immediate danger, please call your local emergency number",
		},
	},
	model.ResourceTherapy: {
		Title: "Finding professional support",
		Lines: []string{
			"Psychology Today therapist directory: psychologytoday.com",
			"Open Path Collective offers reduced-fee therapy: openpathcollective.org",
			"Your primary care doctor can also refer you to a mental health professional",
		},
	},
	model.ResourceSpecialized: {
		Title: "Specialized resources",
		Lines: []string{
			"NAMI HelpLine: 1-800-950-6264 for guidance on specialized care",
			"SAMHSA treatment locator: findtreatment.gov",
			"Condition-specific organizations often run free peer support groups",
		},
	},
	model.ResourcePreventive: {
		Title: "Everyday wellbeing",
		Lines: []string{
			"Regular sleep, movement, and social contact are protective over time",
			"Mindfulness apps can help build a small daily practice",
		},
	},
}

// Follow-up prompts keyed by emotion, consulted in taxonomy order and
// capped at two per response.
var followUpCatalog = map[model.Emotion]string{
	model.EmotionAnxiety:    "What tends to be going on around you when the worry peaks?",
	model.EmotionDepression: "Is there a moment in the day that feels even slightly lighter?",
	model.EmotionStress:     "If one pressure could be lifted this week, which would help most?",
	model.EmotionAnger:      "What happened right before the frustration took over?",
	model.EmotionLoneliness: "Who in your life have you felt most comfortable around, even in the past?",
}

// Asked when no emotion matched but the user still asked for help.
const genericFollowUp = "Could you tell me a bit more about what's been going on?"
