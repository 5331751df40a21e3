// Package config loads simulator settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"vending-sim/internal/logging"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds the runtime settings.
type Config struct {
	// Catalog is a YAML catalog path; empty selects the built-in catalog.
	Catalog   string         `env:"VENDING_CATALOG"`
	LogLevel  string         `env:"VENDING_LOG_LEVEL" envDefault:"warn"`
	LogFormat logging.Format `env:"VENDING_LOG_FORMAT" envDefault:"text"`
	Color     bool           `env:"VENDING_COLOR" envDefault:"true"`
}

// Load reads .env files (if present) and then the process environment.
// Variables already set in the environment win over .env entries.
// The result is not validated; callers apply their overrides and then
// call Validate.
func Load(files ...string) (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// Validate checks the logging settings.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
}
