// File: internal/usecase/support_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"ai-support-companion/internal/analysis"
	"ai-support-companion/internal/domain"
	"ai-support-companion/internal/domain/model"
	"ai-support-companion/internal/domain/ports/adapter"
	"ai-support-companion/internal/domain/ports/repository"
	"ai-support-companion/internal/enhance"
	"ai-support-companion/internal/infra/i18n"
	"ai-support-companion/internal/infra/metrics"
	"ai-support-companion/internal/safety"
)

// Compile-time check
var _ SupportUseCase = (*supportUC)(nil)

type SupportUseCase interface {
	ProcessMessage(ctx context.Context, sessionID, text, language string) (*Reply, error)
	ClearSession(ctx context.Context, sessionID string) error
}

// Reply is the caller-facing result of one processed message.
type Reply struct {
	Text            string                  `json:"text"`
	IsCrisis        bool                    `json:"is_crisis"`
	CrisisResources []string                `json:"crisis_resources,omitempty"`
	Emotions        []model.Emotion         `json:"emotions,omitempty"`
	Needs           model.NeedsAssessment   `json:"needs"`
	Enhancements    model.EnhancementBundle `json:"enhancements"`
}

// RateLimiter gates messages per session. A nil limiter means unlimited.
type RateLimiter interface {
	Allow(ctx context.Context, sessionID string) (bool, error)
}

type supportUC struct {
	sessions   repository.SessionStore
	ai         adapter.GenerationAdapter
	crisis     *safety.CrisisDetector
	validator  *safety.ResponseValidator
	classifier analysis.Classifier
	enhancer   *enhance.Enhancer
	prompt     *PromptBuilder
	sink       adapter.CrisisSink
	tr         *i18n.Translator
	limiter    RateLimiter
	window     int
	log        *zerolog.Logger
}

func NewSupportUseCase(
	sessions repository.SessionStore,
	ai adapter.GenerationAdapter,
	crisis *safety.CrisisDetector,
	validator *safety.ResponseValidator,
	classifier analysis.Classifier,
	enhancer *enhance.Enhancer,
	prompt *PromptBuilder,
	sink adapter.CrisisSink,
	tr *i18n.Translator,
	limiter RateLimiter,
	window int,
	logger *zerolog.Logger,
) *supportUC {
	if window <= 0 {
		window = 12
	}
	l := logger.With().Str("component", "support_uc").Logger()
	return &supportUC{
		sessions:   sessions,
		ai:         ai,
		crisis:     crisis,
		validator:  validator,
		classifier: classifier,
		enhancer:   enhancer,
		prompt:     prompt,
		sink:       sink,
		tr:         tr,
		limiter:    limiter,
		window:     window,
		log:        &l,
	}
}

func (c *supportUC) ProcessMessage(ctx context.Context, sessionID, text, language string) (*Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.IncMessage("empty")
		return nil, domain.ErrEmptyMessage
	}
	start := time.Now()

	if c.limiter != nil {
		allowed, err := c.limiter.Allow(ctx, sessionID)
		if err != nil {
			// Limiter outages must not take the pipeline down.
			c.log.Warn().Err(err).Str("session_id", sessionID).Msg("rate limiter unavailable, allowing")
		} else if !allowed {
			metrics.IncMessage("rate_limited")
			metrics.IncSessionRateLimited()
			return nil, domain.ErrRateLimited
		}
	}

	// Safety comes first. A crisis match never reaches the upstream model.
	assessment := c.crisis.Assess(text)
	if assessment.Severity != model.SeverityNone {
		return c.handleCrisis(ctx, sessionID, text, language, assessment, start)
	}

	recent, err := c.sessions.Recent(ctx, sessionID, c.window)
	if err != nil {
		metrics.IncMessage("error")
		return nil, fmt.Errorf("load recent turns: %w", err)
	}

	replyText, err := c.ai.Generate(ctx, c.prompt.Build(recent, text, language))
	if err != nil {
		// Only cancellation escapes the retrying adapter.
		metrics.IncMessage("error")
		return nil, err
	}

	if vr := c.validator.Validate(replyText); !vr.IsAppropriate {
		metrics.IncValidationIssue()
		c.log.Warn().
			Str("session_id", sessionID).
			Strs("issues", vr.Issues).
			Msg("generated response flagged")
		if vr.Harmful {
			// Dismissive or harmful text never reaches the user.
			replyText = c.tr.T(language, "fallback_text")
		} else {
			replyText = c.tr.T(language, "validation_prefix") + " " + replyText
		}
	}

	emotions := c.classifier.DetectEmotions(text)
	needs := c.classifier.AssessNeeds(text, emotions, recent)
	bundle := c.enhancer.Build(emotions, needs)
	finalText := c.enhancer.Apply(replyText, bundle)

	// A finalized response always reaches the caller. Losing one exchange
	// from history is recoverable; dropping the reply is not.
	c.appendExchange(ctx, sessionID, text, finalText)

	metrics.IncMessage("ok")
	metrics.ObservePipeline(int(time.Since(start).Milliseconds()), false)
	return &Reply{
		Text:         finalText,
		Emotions:     emotions.Labels(),
		Needs:        needs,
		Enhancements: bundle,
	}, nil
}

func (c *supportUC) handleCrisis(ctx context.Context, sessionID, text, language string, assessment model.CrisisAssessment, start time.Time) (*Reply, error) {
	metrics.IncCrisisDetection(string(assessment.Severity))
	c.log.Warn().
		Str("session_id", sessionID).
		Str("severity", string(assessment.Severity)).
		Msg("crisis detected")

	if err := c.sink.Notify(ctx, adapter.CrisisAlert{
		EventID:         ulid.Make().String(),
		SessionID:       sessionID,
		Severity:        assessment.Severity,
		MatchedKeywords: assessment.MatchedKeywords,
		Timestamp:       time.Now().UTC(),
	}); err != nil {
		c.log.Error().Err(err).Str("session_id", sessionID).Msg("crisis alert enqueue failed")
	}

	resources := c.tr.List(language, "crisis_resources")
	replyText := strings.Join([]string{
		c.tr.T(language, "crisis_preamble"),
		strings.Join(resources, "\n"),
		c.tr.T(language, "crisis_closing"),
	}, "\n\n")

	// The hotline bundle goes out no matter what the store does.
	c.appendExchange(ctx, sessionID, text, replyText)

	metrics.IncMessage("crisis")
	metrics.ObservePipeline(int(time.Since(start).Milliseconds()), true)
	return &Reply{
		Text:            replyText,
		IsCrisis:        true,
		CrisisResources: resources,
		Needs: model.NeedsAssessment{
			NeedsProfessionalHelp: true,
			Urgency:               model.UrgencyHigh,
			ResourceType:          model.ResourceImmediate,
		},
	}, nil
}

// appendExchange commits the user turn and the final assistant turn as one
// atomic append, so a failed request leaves no half-written exchange. A
// store failure is logged and counted, never propagated: by the time this
// runs the response is final and must still reach the caller.
func (c *supportUC) appendExchange(ctx context.Context, sessionID, userText, assistantText string) {
	now := time.Now()
	err := c.sessions.Append(ctx, sessionID,
		model.Turn{SessionID: sessionID, Role: model.RoleUser, Content: userText, Timestamp: now},
		model.Turn{SessionID: sessionID, Role: model.RoleAssistant, Content: assistantText, Timestamp: now},
	)
	if err != nil {
		metrics.IncSessionAppendFailure()
		c.log.Error().Err(err).Str("session_id", sessionID).Msg("session append failed, exchange not recorded")
	}
}

func (c *supportUC) ClearSession(ctx context.Context, sessionID string) error {
	if err := c.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	c.log.Info().Str("session_id", sessionID).Msg("session cleared")
	return nil
}
