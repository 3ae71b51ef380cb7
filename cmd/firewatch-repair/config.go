package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/artpar/firewatch/internal/shell/repair"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds repair CLI configuration. The provider block is constructed
// here, once, and passed into the repair collaborator.
type Config struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Log      LogConfig     `mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RepairConfig returns the provider configuration value object.
func (c *Config) RepairConfig() repair.Config {
	return repair.Config{
		Provider: c.Provider,
		APIKey:   c.APIKey,
		Model:    c.Model,
		Timeout:  c.Timeout,
	}
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from the environment:
// FIREWATCH_PROVIDER, FIREWATCH_API_KEY, FIREWATCH_MODEL, FIREWATCH_TIMEOUT.
// The credential falls back to OPENAI_API_KEY when unset.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("provider", repair.ProviderOpenAI)
	v.SetDefault("api_key", "")
	v.SetDefault("model", "")
	v.SetDefault("timeout", repair.DefaultTimeout.String())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("FIREWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional credential fallback
	if err := v.BindEnv("api_key", "FIREWATCH_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind credential env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
// Diagnostics go to stderr so stdout carries nothing but the Dockerfile.
func SetupLogger(cfg LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
