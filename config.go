package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/newscat-core/server/internal/agent/model"
	"github.com/newscat-core/server/internal/core"
	"github.com/newscat-core/server/internal/provider/plaid"
	logx "github.com/newscat-core/server/pkg/logger"
	pkgredis "github.com/newscat-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters, sourced from environment
// variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Classifier configs
	Classifier model.ClassifierModelConfig
	Cache      model.CacheConfig

	// Accounts provider
	Plaid plaid.Config
}

type app struct {
	envFile string
	quiet   bool
	cfg     AppConfig
}

func (a *app) load() error {
	envErr := godotenv.Load(a.envFile)

	if err := envconfig.Process("", &a.cfg); err != nil {
		return fmt.Errorf("failed to process environment config: %w", err)
	}

	logx.Init(logx.LoggerOpts{
		Environment: core.ParseEnvironment(a.cfg.Environment),
		Quiet:       a.quiet,
	})

	if envErr != nil {
		ev := logx.Warn()
		if errors.Is(envErr, fs.ErrNotExist) {
			ev = logx.Debug()
		}
		ev.Err(envErr).Str("file", a.envFile).Msg("could not load dotenv file")
	}
	return nil
}
