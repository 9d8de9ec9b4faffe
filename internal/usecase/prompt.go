// File: internal/usecase/prompt.go
package usecase

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"ai-support-companion/internal/domain/model"
	"ai-support-companion/internal/domain/ports/adapter"
)

const systemPersona = `You are a warm, non-judgmental emotional support companion.
Listen carefully, validate the person's feelings, and respond with empathy.
Keep answers grounded and conversational. Do not diagnose, prescribe, or
promise outcomes. If the person seems to be in danger, gently encourage them
to reach out to a crisis line or a trusted person.`

// PromptBuilder assembles the upstream request from the recent window,
// trimming oldest turns first when the token budget would be exceeded.
type PromptBuilder struct {
	window int
	budget int
	enc    *tiktoken.Tiktoken
}

func NewPromptBuilder(window, budget int) *PromptBuilder {
	// Encoding load can fail offline; the rune heuristic covers that case.
	enc, _ := tiktoken.GetEncoding("cl100k_base")
	return &PromptBuilder{window: window, budget: budget, enc: enc}
}

func (b *PromptBuilder) Build(recent []model.Turn, userText, language string) adapter.GenerationRequest {
	system := systemPersona
	if language != "" && language != "en" {
		system += fmt.Sprintf("\nRespond in the language with code %q.", language)
	}

	turns := recent
	if b.window > 0 && len(turns) > b.window {
		turns = turns[len(turns)-b.window:]
	}

	// Newest turns matter most, so walk backwards and stop once the
	// budget is spent, then restore chronological order.
	used := b.countTokens(system) + b.countTokens(userText)
	kept := make([]adapter.Message, 0, len(turns)+1)
	for i := len(turns) - 1; i >= 0; i-- {
		cost := b.countTokens(turns[i].Content)
		if b.budget > 0 && used+cost > b.budget {
			break
		}
		used += cost
		kept = append(kept, adapter.Message{Role: string(turns[i].Role), Content: turns[i].Content})
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	kept = append(kept, adapter.Message{Role: string(model.RoleUser), Content: userText})

	return adapter.GenerationRequest{
		System:   system,
		History:  kept,
		Language: language,
	}
}

func (b *PromptBuilder) countTokens(text string) int {
	if b.enc != nil {
		return len(b.enc.Encode(text, nil, nil))
	}
	// Rough approximation used when no encoding is available.
	return utf8.RuneCountInString(text)/4 + 1
}
