package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ai-support-companion/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.GenerationAdapter = (*OpenAIAdapter)(nil)

// OpenAIAdapter calls an OpenAI-compatible Chat Completions API and maps
// HTTP failures onto the upstream error taxonomy so the retry layer can
// classify them.
type OpenAIAdapter struct {
	apiKey string
	base   string // e.g., https://api.openai.com/v1
	model  string
	client *http.Client
}

func NewOpenAIAdapter(apiKey, model, base string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	return &OpenAIAdapter{
		apiKey: apiKey,
		base:   base,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (o *OpenAIAdapter) Provider() string { return "openai" }

func (o *OpenAIAdapter) Generate(ctx context.Context, req adapter.GenerationRequest) (string, error) {
	messages := make([]adapter.Message, 0, len(req.History)+1)
	if req.System != "" {
		messages = append(messages, adapter.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, req.History...)

	reqBody := struct {
		Model    string            `json:"model"`
		Messages []adapter.Message `json:"messages"`
	}{Model: o.model, Messages: messages}

	b, _ := json.Marshal(reqBody)
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, o.base+"/chat/completions", bytes.NewReader(b))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", classifyStatus(resp.StatusCode, resp.Header.Get("Retry-After"))
	}

	var payload struct {
		Choices []struct {
			Message adapter.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &adapter.UpstreamError{Kind: adapter.KindNetwork, Err: fmt.Errorf("decode response: %w", err)}
	}
	for _, c := range payload.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	return "", &adapter.UpstreamError{Kind: adapter.KindUnavailable, Err: errors.New("no choice content")}
}

// classifyStatus maps an HTTP status onto the upstream taxonomy:
// 429 is rate-limited (with any server wait hint), 5xx is transient
// unavailability (cold starts included), and remaining 4xx is a
// non-retryable client failure.
func classifyStatus(status int, retryAfter string) *adapter.UpstreamError {
	base := fmt.Errorf("http %d", status)
	switch {
	case status == http.StatusTooManyRequests:
		return &adapter.UpstreamError{
			Kind:       adapter.KindRateLimited,
			Status:     status,
			RetryAfter: parseRetryAfter(retryAfter),
			Err:        base,
		}
	case status >= 500:
		return &adapter.UpstreamError{Kind: adapter.KindUnavailable, Status: status, Err: base}
	default:
		return &adapter.UpstreamError{Kind: adapter.KindClient, Status: status, Err: base}
	}
}

func classifyTransport(err error) *adapter.UpstreamError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &adapter.UpstreamError{Kind: adapter.KindTimeout, Err: err}
	}
	return &adapter.UpstreamError{Kind: adapter.KindNetwork, Err: err}
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
