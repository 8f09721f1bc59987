// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Session struct {
		AutosaveMinutes  int `mapstructure:"autosave_minutes" yaml:"autosave_minutes"`
		HighlightSeconds int `mapstructure:"highlight_seconds" yaml:"highlight_seconds"`
	} `mapstructure:"session" yaml:"session"`

	Search struct {
		PageSize      int `mapstructure:"page_size" yaml:"page_size"`
		MinTermLength int `mapstructure:"min_term_length" yaml:"min_term_length"`
	} `mapstructure:"search" yaml:"search"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`
}

// AutosaveInterval returns the autosave period as a duration.
func (c *Config) AutosaveInterval() time.Duration {
	return time.Duration(c.Session.AutosaveMinutes) * time.Minute
}

// HighlightDuration returns how long a resolver hit stays highlighted.
func (c *Config) HighlightDuration() time.Duration {
	return time.Duration(c.Session.HighlightSeconds) * time.Second
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then CCA_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.cca-audit")
	v.AddConfigPath(".cca-audit")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CCA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the unprefixed environment variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration, used when no config file or
// environment overrides are available.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		// The defaults always unmarshal; an empty config is the safe fallback.
		return &Config{}
	}
	return &config
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("session.autosave_minutes", 5)
	v.SetDefault("session.highlight_seconds", 60)

	v.SetDefault("search.page_size", 100)
	v.SetDefault("search.min_term_length", 2)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("data.directory", "")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Session.AutosaveMinutes < 1 {
		return fmt.Errorf("session.autosave_minutes must be at least 1, got %d", config.Session.AutosaveMinutes)
	}

	if config.Search.PageSize < 1 {
		return fmt.Errorf("search.page_size must be at least 1, got %d", config.Search.PageSize)
	}

	if config.Search.MinTermLength < 1 {
		return fmt.Errorf("search.min_term_length must be at least 1, got %d", config.Search.MinTermLength)
	}

	if config.AI.Enabled && config.AI.TimeoutSeconds < 1 {
		return fmt.Errorf("ai.timeout_seconds must be at least 1, got %d", config.AI.TimeoutSeconds)
	}

	return nil
}
