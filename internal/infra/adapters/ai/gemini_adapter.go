package ai

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"ai-support-companion/internal/domain/ports/adapter"
)

var _ adapter.GenerationAdapter = (*GeminiAdapter)(nil)

type GeminiAdapter struct {
	client       *genai.Client
	defaultModel string
	maxOut       int
}

// NewGeminiAdapter creates a Gemini adapter using the official SDK.
func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, defaultModel string, maxOut int) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	if defaultModel == "" {
		defaultModel = "gemini-2.0-flash"
	}
	return &GeminiAdapter{client: c, defaultModel: defaultModel, maxOut: maxOut}, nil
}

func (g *GeminiAdapter) Provider() string { return "gemini" }

func (g *GeminiAdapter) Generate(ctx context.Context, req adapter.GenerationRequest) (string, error) {
	if len(req.History) == 0 {
		return "", &adapter.UpstreamError{Kind: adapter.KindClient, Err: errors.New("gemini: no messages")}
	}

	history := toGenAIHistory(req.History[:len(req.History)-1])
	cfg := &genai.GenerateContentConfig{}
	if g.maxOut > 0 {
		cfg.MaxOutputTokens = int32(g.maxOut)
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	chat, err := g.client.Chats.Create(ctx, g.defaultModel, cfg, history)
	if err != nil {
		return "", classifyGenAI(err)
	}

	last := req.History[len(req.History)-1]
	if strings.ToLower(last.Role) != "user" {
		return "", &adapter.UpstreamError{Kind: adapter.KindClient, Err: errors.New("gemini: last message must be from user")}
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: last.Content})
	if err != nil {
		return "", classifyGenAI(err)
	}

	text := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		if t := resp.Candidates[0].Content.Parts[0].Text; t != "" {
			text = t
		}
	}
	if text == "" {
		return "", &adapter.UpstreamError{Kind: adapter.KindUnavailable, Err: errors.New("gemini: empty candidate")}
	}
	return text, nil
}

// classifyGenAI maps SDK errors onto the upstream taxonomy using the
// embedded HTTP status when the API reported one.
func classifyGenAI(err error) *adapter.UpstreamError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return classifyStatus(apiErr.Code, "")
	}
	return classifyTransport(err)
}

func toGenAIHistory(msgs []adapter.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		switch strings.ToLower(m.Role) {
		case "assistant", "model":
			role = genai.RoleModel
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return out
}
