// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/tunsimp/imhere/internal/journal"
	"github.com/tunsimp/imhere/internal/storage"
)

// DefaultQuota mirrors the usual browser localStorage allowance.
const DefaultQuota = 5 << 20

type Config struct {
	DBPath      string        `env:"IMHERE_DB"`
	LogLevel    string        `env:"IMHERE_LOG_LEVEL" envDefault:"warn"`
	Resilience  string        `env:"IMHERE_RESILIENCE" envDefault:"fail-open"`
	Quota       int64         `env:"IMHERE_STORAGE_QUOTA" envDefault:"5242880"`
	FontTimeout time.Duration `env:"IMHERE_FONT_TIMEOUT" envDefault:"3s"`
	ExportDir   string        `env:"IMHERE_EXPORT_DIR" envDefault:"."`
	// Lang overrides the language stored in settings when set.
	Lang string `env:"IMHERE_LANG"`
}

// Load parses the process environment and validates the result.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom is Load over an explicit variable map instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := storage.ParsePolicy(c.Resilience); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.LogLevel)
	}
	if c.Quota < 0 {
		return fmt.Errorf("invalid storage quota: %d", c.Quota)
	}
	if c.FontTimeout <= 0 {
		return fmt.Errorf("invalid font timeout: %s", c.FontTimeout)
	}
	if c.Lang != "" {
		if _, err := journal.ParseLanguage(c.Lang); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) Policy() storage.Policy {
	p, _ := storage.ParsePolicy(c.Resilience)
	return p
}
