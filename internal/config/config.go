// Package config loads runtime defaults from the environment.
//
// Values come from GILDEDROSE_* environment variables, optionally seeded from
// a .env file. Command-line flags take precedence; the CLI uses a loaded
// Config only as the default value of each flag.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnvFile is the file Load reads before parsing the environment.
const DotEnvFile = ".env"

// Config holds runtime defaults.
type Config struct {
	Database string `env:"GILDEDROSE_DB"`
	Days     int    `env:"GILDEDROSE_DAYS"      envDefault:"2"`
	Format   string `env:"GILDEDROSE_FORMAT"    envDefault:"text"`
	LogLevel string `env:"GILDEDROSE_LOG_LEVEL" envDefault:"info"`
}

// Default returns the built-in defaults, ignoring the environment.
func Default() Config {
	var cfg Config
	// envDefault tags always parse.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// Load reads DotEnvFile if present, then parses the environment.
func Load() (Config, error) {
	return LoadFrom(DotEnvFile)
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an
// error; variables already set in the environment are never overridden.
// An empty path skips the file entirely.
func LoadFrom(dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no command could use.
func (c Config) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("GILDEDROSE_DAYS must be non-negative, got %d", c.Days)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("GILDEDROSE_FORMAT must be text or json, got %q", c.Format)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("GILDEDROSE_LOG_LEVEL: %w", err)
	}
	return level, nil
}
