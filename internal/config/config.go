// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration for the game client.
type Config struct {
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	Model        string `env:"ASCENSION_MODEL" envDefault:"gpt-5-2025-08-07"`

	PlayerName  string `env:"ASCENSION_PLAYER_NAME" envDefault:"Wanderer"`
	SaveDBPath  string `env:"ASCENSION_SAVE_DB" envDefault:"ascension.db"`
	HistorySize int    `env:"ASCENSION_HISTORY_SIZE" envDefault:"20"`

	StatsEnabled    bool `env:"ASCENSION_STATS_ENABLED" envDefault:"true"`
	NarrativeCombat bool `env:"ASCENSION_NARRATIVE_COMBAT" envDefault:"false"`

	Debug bool `env:"ASCENSION_DEBUG" envDefault:"false"`

	TracingEnabled    bool   `env:"OTEL_TRACES_ENABLED" envDefault:"false"`
	Environment       string `env:"ENVIRONMENT" envDefault:"development"`
	LangfuseHost      string `env:"LANGFUSE_HOST" envDefault:"https://cloud.langfuse.com"`
	LangfusePublicKey string `env:"LANGFUSE_PUBLIC_KEY"`
	LangfuseSecretKey string `env:"LANGFUSE_SECRET_KEY"`
}

// Load reads the .env file if one exists, then parses the environment. A
// missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
