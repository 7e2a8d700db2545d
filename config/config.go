package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds all process configuration, loaded from the environment.
// The Groq key is optional on purpose: a missing key must not prevent
// startup, the completion service reports it on first use instead.
type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8000"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgresql://vandri_user:secretpassword@db:5432/vandri_db"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://redis:6379"`

	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel   string `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("fail to parse config: %w", err)
	}
	return cfg, nil
}
