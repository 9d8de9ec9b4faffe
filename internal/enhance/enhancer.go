// File: internal/enhance/enhancer.go
package enhance

import (
	"strings"

	"ai-support-companion/internal/domain/model"
)

const (
	maxCopingStrategies = 3
	maxResourceLines    = 3
	maxFollowUps        = 2
)

// Category indicators used for the idempotence scan: when rawText already
// carries a category, Apply skips adding it again so repeated enhancement
// never stacks sections.
var (
	validationIndicators = []string{
		"your feelings are valid", "it's okay to feel", "makes sense that you feel",
	}
	copingIndicators = []string{
		"coping", "you could try", "might help:", "breathing", "grounding",
	}
	resourceIndicators = []string{
		"988", "crisis text line", "psychologytoday", "helpline", "findtreatment",
	}
)

// Enhancer builds an EnhancementBundle from classification output and
// applies it to text as a separate step. Both halves are pure.
type Enhancer struct{}

func NewEnhancer() *Enhancer { return &Enhancer{} }

// Build selects validation language, coping strategies, resources and
// follow-ups for the (emotions, needs) pair. It never inspects the raw
// response text; that concern lives in Apply.
func (e *Enhancer) Build(emotions model.EmotionSet, needs model.NeedsAssessment) model.EnhancementBundle {
	bundle := model.EnhancementBundle{}

	if len(emotions) > 0 {
		bundle.ValidationLine = "Your feelings are valid, and it takes courage to talk about them."
	}

	if needs.NeedsCoping {
		bundle.CopingStrategies = selectCoping(emotions, needs.Urgency)
	}

	// Preventive resources go out when the user explicitly asks for help,
	// even at low urgency; higher tiers attach on their own signal.
	wantResources := needs.NeedsProfessionalHelp ||
		needs.ResourceType != model.ResourcePreventive ||
		(needs.NeedsCoping && needs.HasExplicitHelpRequest)
	if wantResources {
		if group, ok := resourceCatalog[needs.ResourceType]; ok {
			lines := group.Lines
			if len(lines) > maxResourceLines {
				lines = lines[:maxResourceLines]
			}
			bundle.Resources = &model.ResourceGroup{Title: group.Title, Lines: lines}
		}
	}

	bundle.FollowUps = selectFollowUps(emotions, needs)
	return bundle
}

// Apply renders the bundle onto text, skipping every category the text
// already contains.
func (e *Enhancer) Apply(text string, bundle model.EnhancementBundle) string {
	if bundle.Empty() {
		return text
	}
	normalized := strings.ToLower(text)
	var b strings.Builder
	b.WriteString(text)

	if bundle.ValidationLine != "" && !containsAny(normalized, validationIndicators) {
		b.WriteString("\n\n")
		b.WriteString(bundle.ValidationLine)
	}

	if len(bundle.CopingStrategies) > 0 && !containsAny(normalized, copingIndicators) {
		b.WriteString("\n\nA few things that might help:")
		for _, s := range bundle.CopingStrategies {
			b.WriteString("\n- ")
			b.WriteString(s.Name)
			b.WriteString(": ")
			b.WriteString(s.Description)
		}
	}

	if bundle.Resources != nil && !containsAny(normalized, resourceIndicators) {
		b.WriteString("\n\n")
		b.WriteString(bundle.Resources.Title)
		b.WriteString(":")
		for _, line := range bundle.Resources.Lines {
			b.WriteString("\n- ")
			b.WriteString(line)
		}
	}

	for _, q := range bundle.FollowUps {
		if !strings.Contains(normalized, strings.ToLower(q)) {
			b.WriteString("\n\n")
			b.WriteString(q)
		}
	}

	return b.String()
}

func selectCoping(emotions model.EmotionSet, urgency model.Urgency) []model.CopingStrategy {
	allowed := func(im model.Immediacy) bool {
		switch urgency {
		case model.UrgencyHigh:
			return im == model.ImmediacyImmediate
		case model.UrgencyMedium:
			return im == model.ImmediacyImmediate || im == model.ImmediacyShortTerm
		default:
			return true
		}
	}

	seen := map[string]struct{}{}
	var out []model.CopingStrategy
	for _, label := range emotions.Labels() {
		for _, s := range copingCatalog[label] {
			if !allowed(s.Immediacy) {
				continue
			}
			if _, dup := seen[s.Name]; dup {
				continue
			}
			seen[s.Name] = struct{}{}
			out = append(out, s)
			if len(out) == maxCopingStrategies {
				return out
			}
		}
	}
	return out
}

func selectFollowUps(emotions model.EmotionSet, needs model.NeedsAssessment) []string {
	var out []string
	for _, label := range emotions.Labels() {
		if q, ok := followUpCatalog[label]; ok {
			out = append(out, q)
			if len(out) == maxFollowUps {
				return out
			}
		}
	}
	if len(out) == 0 && needs.HasExplicitHelpRequest {
		out = append(out, genericFollowUp)
	}
	return out
}

func containsAny(normalized string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(normalized, ind) {
			return true
		}
	}
	return false
}
