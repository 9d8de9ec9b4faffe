// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	AdminPort      int           `yaml:"admin_port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"` // optional; empty disables the postgres store
}

type RedisConfig struct {
	URL      string        `yaml:"url"` // optional; empty disables redis
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AIConfig struct {
	OpenAIKey       string `yaml:"openai_key"`
	OpenAIBaseURL   string `yaml:"openai_base_url"`
	GeminiKey       string `yaml:"gemini_key"`
	GeminiURL       string `yaml:"gemini_url"`
	DefaultModel    string `yaml:"default_model"`
	ConcurrentLimit int    `yaml:"concurrent_limit"` // max concurrent AI calls
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay"`
}

type SessionConfig struct {
	Window        int           `yaml:"window"`         // turns fed into the prompt
	MaxTurns      int           `yaml:"max_turns"`      // turns retained per session
	TTL           time.Duration `yaml:"ttl"`            // idle lifetime before sweep
	SweepInterval time.Duration `yaml:"sweep_interval"` // background sweep cadence
	PromptBudget  int           `yaml:"prompt_budget"`  // token budget for prompt history
	RateLimit     int           `yaml:"rate_limit"`     // messages per window, 0 disables
	RateWindow    time.Duration `yaml:"rate_window"`    // rate limit window
	Store         string        `yaml:"store"`          // memory | redis | postgres
}

type AlertConfig struct {
	WebhookURL string        `yaml:"webhook_url"` // optional; empty uses the noop sink
	Timeout    time.Duration `yaml:"timeout"`
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	AI       AIConfig       `yaml:"ai"`
	Retry    RetryConfig    `yaml:"retry"`
	Session  SessionConfig  `yaml:"session"`
	Alert    AlertConfig    `yaml:"alert"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.AdminPort <= 0 {
		cfg.Server.AdminPort = 9090
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 60 * time.Second
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 16
	}
	if cfg.AI.DefaultModel == "" {
		cfg.AI.DefaultModel = "gpt-4o-mini"
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = 4
	}
	if cfg.Retry.BaseDelay <= 0 {
		cfg.Retry.BaseDelay = 500 * time.Millisecond
	}
	if cfg.Retry.MaxDelay <= 0 {
		cfg.Retry.MaxDelay = 8 * time.Second
	}
	if cfg.Session.Window <= 0 {
		cfg.Session.Window = 12
	}
	if cfg.Session.MaxTurns <= 0 {
		cfg.Session.MaxTurns = 50
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = time.Hour
	}
	if cfg.Session.SweepInterval <= 0 {
		cfg.Session.SweepInterval = 5 * time.Minute
	}
	if cfg.Session.PromptBudget <= 0 {
		cfg.Session.PromptBudget = 2048
	}
	if cfg.Session.RateWindow <= 0 {
		cfg.Session.RateWindow = time.Minute
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = "memory"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = cfg.Session.TTL
	}
	if cfg.Alert.Timeout <= 0 {
		cfg.Alert.Timeout = 5 * time.Second
	}

	// Minimal validation
	switch cfg.Session.Store {
	case "memory":
	case "redis":
		if cfg.Redis.URL == "" {
			return nil, errors.New("redis.url is required when session.store is redis")
		}
	case "postgres":
		if cfg.Database.URL == "" {
			return nil, errors.New("database.url is required when session.store is postgres")
		}
	default:
		return nil, fmt.Errorf("unknown session.store %q", cfg.Session.Store)
	}
	if cfg.Session.RateLimit > 0 && cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required when session.rate_limit is set")
	}
	if !dev && cfg.AI.OpenAIKey == "" && cfg.AI.GeminiKey == "" {
		return nil, errors.New("at least one of ai.openai_key or ai.gemini_key is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
