// Package config loads settings from the environment, optionally seeded by a
// .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "POS"

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	SeedCatalog bool `envconfig:"SEED_CATALOG" default:"true"`

	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	MetricsToken   string `envconfig:"METRICS_TOKEN"`

	RateLimitPerMin int `envconfig:"RATE_LIMIT_PER_MIN" default:"60"`
}

// Load reads envFiles (missing files are ignored; values already in the
// environment win) and then processes POS_* variables.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.RateLimitPerMin < 0 {
		return nil, fmt.Errorf("parsing config: %s_RATE_LIMIT_PER_MIN must be >= 0", EnvPrefix)
	}
	return &cfg, nil
}
