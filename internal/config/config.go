// Package config loads graft settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/time/rate"
)

// Config holds the process settings. Command-line flags override it.
type Config struct {
	Namespace   string  `env:"GRAFT_NAMESPACE" envDefault:"graft"`
	LogLevel    string  `env:"GRAFT_LOG_LEVEL" envDefault:"info"`
	HTTPAddr    string  `env:"GRAFT_HTTP_ADDR" envDefault:"127.0.0.1:8088"`
	RedisAddr   string  `env:"GRAFT_REDIS_ADDR"`
	RedisPrefix string  `env:"GRAFT_REDIS_PREFIX" envDefault:"graft:"`
	RateLimit   float64 `env:"GRAFT_RATE_LIMIT" envDefault:"20"`
	RateBurst   int     `env:"GRAFT_RATE_BURST" envDefault:"40"`

	ShutdownTimeout time.Duration `env:"GRAFT_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Limit returns the request rate limit. A non-positive rate disables limiting.
func (c Config) Limit() rate.Limit {
	if c.RateLimit <= 0 {
		return rate.Inf
	}
	return rate.Limit(c.RateLimit)
}
