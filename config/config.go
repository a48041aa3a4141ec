/*
Package config loads server configuration from the environment.

PURPOSE:
  Collects the settings cmd/server needs into one struct. Values come
  from, in increasing priority:
    1. envDefault tags below
    2. a .env file in the working directory (optional)
    3. the process environment
  Command-line flags in cmd/server override all three.

VARIABLES:
  BENEFITS_PORT             HTTP server port (default: 8080)
  BENEFITS_DB_PATH          SQLite database path (default: benefits.db)
  BENEFITS_ALLOWED_ORIGINS  Comma-separated CORS origins
  BENEFITS_SEED_SCENARIO    Scenario loaded into an empty database
                            (default: default-roster, "none" disables)
  BENEFITS_PAYRUN_ENABLED   Run pay runs on a timer (default: false)
  BENEFITS_PAYRUN_INTERVAL  Time between scheduled pay runs (default: 24h)

SEE ALSO:
  - cmd/server/main.go: Flag overrides and startup
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// SeedNone disables scenario seeding at startup.
const SeedNone = "none"

// Config is the server configuration.
type Config struct {
	Port           int           `env:"BENEFITS_PORT" envDefault:"8080"`
	DBPath         string        `env:"BENEFITS_DB_PATH" envDefault:"benefits.db"`
	AllowedOrigins []string      `env:"BENEFITS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`
	SeedScenario   string        `env:"BENEFITS_SEED_SCENARIO" envDefault:"default-roster"`
	PayrunEnabled  bool          `env:"BENEFITS_PAYRUN_ENABLED" envDefault:"false"`
	PayrunInterval time.Duration `env:"BENEFITS_PAYRUN_INTERVAL" envDefault:"24h"`
}

// Load reads the given .env files (".env" when none are named), then
// parses the environment into a Config. Missing files are skipped.
// Variables already set in the process environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
		log.Printf("[Config] Loaded %s", f)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
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

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DBPath == "" {
		return errors.New("database path is required")
	}
	if c.PayrunEnabled && c.PayrunInterval <= 0 {
		return fmt.Errorf("pay run interval must be positive, got %v", c.PayrunInterval)
	}
	return nil
}

// SeedEnabled reports whether a scenario should be loaded at startup.
func (c Config) SeedEnabled() bool {
	return c.SeedScenario != "" && c.SeedScenario != SeedNone
}
