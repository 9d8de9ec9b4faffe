package model

// Immediacy classifies how quickly a coping strategy can help.
type Immediacy string

const (
	ImmediacyImmediate Immediacy = "immediate"
	ImmediacyShortTerm Immediacy = "short_term"
	ImmediacyLongTerm  Immediacy = "long_term"
)

// CopingStrategy is one catalog entry.
type CopingStrategy struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Immediacy   Immediacy `json:"immediacy"`
}

// ResourceGroup bundles up to three literal resource lines under a title.
type ResourceGroup struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// EnhancementBundle is produced per call and never persisted. The caps
// (3 strategies, 1 resource group, 2 follow-ups) bound response growth
// under repeated enhancement.
type EnhancementBundle struct {
	ValidationLine   string           `json:"validation_line,omitempty"`
	CopingStrategies []CopingStrategy `json:"coping_strategies,omitempty"`
	Resources        *ResourceGroup   `json:"resources,omitempty"`
	FollowUps        []string         `json:"follow_ups,omitempty"`
}

// Empty reports whether applying the bundle would leave text unchanged.
func (b EnhancementBundle) Empty() bool {
	return b.ValidationLine == "" && len(b.CopingStrategies) == 0 && b.Resources == nil && len(b.FollowUps) == 0
}
