// Package config loads host configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds host settings. Only CheckpointCount reaches the tracker;
// the rest selects its collaborators.
type Config struct {
	// CheckpointCount of zero or less disables prompting.
	CheckpointCount int `env:"SOLICIT_CHECKPOINT_COUNT" envDefault:"3"`

	Backend   string `env:"SOLICIT_STORE" envDefault:"sqlite"`
	StorePath string `env:"SOLICIT_STORE_PATH" envDefault:"."`

	RedisAddr     string `env:"SOLICIT_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"SOLICIT_REDIS_PASSWORD"`
	RedisDB       int    `env:"SOLICIT_REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"SOLICIT_REDIS_PREFIX" envDefault:"solicit_review:"`

	// AppVersion, when set, overrides the release version in the bundle.
	BundlePath string `env:"SOLICIT_BUNDLE" envDefault:"app.yaml"`
	AppVersion string `env:"SOLICIT_APP_VERSION"`
	AppName    string `env:"SOLICIT_APP_NAME"`
	AppStoreID string `env:"SOLICIT_APP_STORE_ID"`

	Language string `env:"SOLICIT_LANG" envDefault:"en"`
	LogLevel string `env:"SOLICIT_LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file from the working directory when one exists, then
// parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings no collaborator can be built from.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid SOLICIT_STORE: %q (must be sqlite, redis or memory)", c.Backend)
	}
	if c.Backend == BackendRedis && c.RedisAddr == "" {
		return fmt.Errorf("SOLICIT_REDIS_ADDR is required for the redis store")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("invalid SOLICIT_REDIS_DB: %d", c.RedisDB)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("invalid SOLICIT_LANG %q: %w", c.Language, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid SOLICIT_LOG_LEVEL: %w", err)
	}
	return nil
}

// LanguageTag returns the parsed prompt language, English when unparsable.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}
	return tag
}
