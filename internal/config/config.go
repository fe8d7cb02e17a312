package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	SaveDir     string `env:"SILKROUTE_SAVE_DIR" envDefault:".saves"`
	Slot        string `env:"SILKROUTE_SLOT" envDefault:"current"`
	Backend     string `env:"SILKROUTE_BACKEND" envDefault:"file"`
	DBPath      string `env:"SILKROUTE_DB_PATH" envDefault:".saves/silkroute.db"`
	ContentPath string `env:"SILKROUTE_CONTENT"`
	LogFile     string `env:"SILKROUTE_LOG_FILE" envDefault:".saves/silkroute.log"`
	LogLevel    string `env:"SILKROUTE_LOG_LEVEL" envDefault:"info"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConfig loads and validates the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the environment cannot type-check.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("SILKROUTE_BACKEND %q: want %s, %s or %s", c.Backend, BackendFile, BackendSQLite, BackendMemory)
	}
	if strings.TrimSpace(c.Slot) == "" {
		return fmt.Errorf("SILKROUTE_SLOT is empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("SILKROUTE_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

// RequireGemini reports whether the Gemini-backed player can be built.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}
