// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"ai-support-companion/internal/analysis"
	"ai-support-companion/internal/config"
	"ai-support-companion/internal/domain/ports/adapter"
	"ai-support-companion/internal/domain/ports/repository"
	"ai-support-companion/internal/enhance"
	aiAdapters "ai-support-companion/internal/infra/adapters/ai"
	"ai-support-companion/internal/infra/adapters/alert"
	"ai-support-companion/internal/infra/api"
	pg "ai-support-companion/internal/infra/db/postgres"
	"ai-support-companion/internal/infra/i18n"
	"ai-support-companion/internal/infra/logging"
	"ai-support-companion/internal/infra/metrics"
	red "ai-support-companion/internal/infra/redis"
	"ai-support-companion/internal/infra/store/memory"
	"ai-support-companion/internal/infra/worker"
	"ai-support-companion/internal/retry"
	"ai-support-companion/internal/safety"
	"ai-support-companion/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop AI fallback, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- i18n ----
	translator, err := i18n.NewTranslator(i18n.LocalesFS)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}

	// ---- Worker pool (crisis alert delivery) ----
	pool := worker.NewPool(4, logger)
	pool.Start(ctx)
	defer pool.Stop()

	// ---- Redis (optional) ----
	var redisClient *red.Client
	if cfg.Redis.URL != "" {
		redisClient, err = red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
	}

	// ---- Session store ----
	var sessions repository.SessionStore
	var sweepable bool
	switch cfg.Session.Store {
	case "redis":
		locker := red.NewLocker(redisClient)
		sessions = red.NewSessionStore(redisClient, locker, cfg.Session.TTL, cfg.Session.MaxTurns)
		logger.Info().Msg("session store: redis")
	case "postgres":
		pgPool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres")
		}
		defer pgPool.Close()
		sessions = pg.NewSessionRepo(pgPool, cfg.Session.MaxTurns)
		sweepable = true
		logger.Info().Msg("session store: postgres")
	default:
		sessions = memory.NewSessionStore(cfg.Session.MaxTurns)
		sweepable = true
		logger.Info().Msg("session store: memory")
	}
	if sweepable {
		go runSweeper(ctx, sessions, cfg.Session.TTL, cfg.Session.SweepInterval, logger)
	}

	// ---- AI adapter (OpenAI -> Gemini -> noop in dev) ----
	var inner adapter.GenerationAdapter
	var provider string
	switch {
	case cfg.AI.OpenAIKey != "":
		inner, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.DefaultModel, cfg.AI.OpenAIBaseURL)
		provider = "openai"
	case cfg.AI.GeminiKey != "":
		inner, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel, 1024)
		provider = "gemini"
	case cfg.Runtime.Dev:
		inner, provider = aiAdapters.NewNoopAI(), "noop"
	default:
		logger.Fatal().Msg("no AI provider configured: set ai.openai_key or ai.gemini_key")
	}
	if err != nil {
		logger.Fatal().Err(err).Str("provider", provider).Msg("ai adapter")
	}
	logger.Info().Str("provider", provider).Str("model", cfg.AI.DefaultModel).Msg("ai adapter ready")

	limited := aiAdapters.NewLimitedAI(inner, cfg.AI.ConcurrentLimit)
	policy := retry.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
	}
	fallback := func(language string) string { return translator.T(language, "fallback_text") }
	ai := aiAdapters.NewRetryingAdapter(limited, provider, policy, fallback, logger)

	// ---- Crisis sink ----
	var sink adapter.CrisisSink
	if cfg.Alert.WebhookURL != "" {
		sink = alert.NewWebhookSink(cfg.Alert.WebhookURL, cfg.Alert.Timeout, pool, logger)
	} else {
		sink = alert.NewNoopSink()
	}

	// ---- Rate limiter (optional, redis only) ----
	var limiter usecase.RateLimiter
	if cfg.Session.RateLimit > 0 && redisClient != nil {
		limiter = red.NewRateLimiter(redisClient, cfg.Session.RateLimit, cfg.Session.RateWindow)
	}

	// ---- Use case ----
	uc := usecase.NewSupportUseCase(
		sessions,
		ai,
		safety.NewCrisisDetector(),
		safety.NewResponseValidator(),
		analysis.NewKeywordClassifier(),
		enhance.NewEnhancer(),
		usecase.NewPromptBuilder(cfg.Session.Window, cfg.Session.PromptBudget),
		sink,
		translator,
		limiter,
		cfg.Session.Window,
		logger,
	)

	// ---- HTTP servers ----
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewServer(uc, cfg.Server.RequestTimeout, logger).Handler(),
	}
	adminSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.AdminPort),
		Handler: metrics.AdminRouter(),
	}
	go func() {
		logger.Info().Str("addr", apiSrv.Addr).Msg("api listening")
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("api server")
		}
	}()
	go func() {
		logger.Info().Str("addr", adminSrv.Addr).Msg("admin listening")
		if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown requested")

	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shCtx)
	_ = adminSrv.Shutdown(shCtx)
}

// runSweeper evicts idle sessions on a fixed cadence. Redis expires its
// own keys, so only the memory and postgres stores need this.
func runSweeper(ctx context.Context, sessions repository.SessionStore, ttl, every time.Duration, logger *zerolog.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := sessions.Sweep(ctx, time.Now().Add(-ttl))
			if err != nil {
				logger.Warn().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				logger.Info().Int("evicted", n).Msg("session sweep")
			}
		}
	}
}
