// Package config handles configuration loading for The Pill.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"      yaml:"llm"`
	Finnhub  FinnhubConfig  `mapstructure:"finnhub"  yaml:"finnhub"`
	SEC      SECConfig      `mapstructure:"sec"      yaml:"sec"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// LLMConfig holds the analysis model configuration.
type LLMConfig struct {
	AnthropicKey string  `mapstructure:"anthropic_key" yaml:"anthropic_key"`
	BaseURL      string  `mapstructure:"base_url"      yaml:"base_url"`
	Model        string  `mapstructure:"model"         yaml:"model"`
	Temperature  float64 `mapstructure:"temperature"   yaml:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"    yaml:"max_tokens"`
	MaxRetries   int     `mapstructure:"max_retries"   yaml:"max_retries"`
}

// FinnhubConfig holds the real-time quote feed configuration.
// The key is optional; without it get_realtime_quote degrades to an error
// result and the rest of the toolset works normally.
type FinnhubConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

// SECConfig holds EDGAR access settings.
type SECConfig struct {
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// AnalysisConfig holds agent loop settings.
type AnalysisConfig struct {
	MaxTurns int `mapstructure:"max_turns" yaml:"max_turns"` // cap on model round-trips per analysis
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.thepill/config.yaml (home directory)
//  3. /etc/thepill/config.yaml (system)
//
// Environment variables override config file values.
// Format: THEPILL_<SECTION>_<KEY>, e.g., THEPILL_API_PORT.
// The canonical ANTHROPIC_API_KEY and FINNHUB_API_KEY names are honored too.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".thepill"))
	v.AddConfigPath("/etc/thepill")

	v.SetEnvPrefix("THEPILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults + env vars are enough to run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("THEPILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// LLM defaults
	v.SetDefault("llm.base_url", "https://api.anthropic.com/v1")
	v.SetDefault("llm.model", "claude-sonnet-4-20250514")
	v.SetDefault("llm.temperature", 1.0)
	v.SetDefault("llm.max_tokens", 8192)
	v.SetDefault("llm.max_retries", 2)

	// SEC defaults. EDGAR requires an identifying User-Agent.
	v.SetDefault("sec.user_agent", "ThePill/1.0 (Educational Stock Analysis Tool)")

	// Analysis defaults
	v.SetDefault("analysis.max_turns", 25)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 5000)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
// The prefixed names win over the canonical ones when both are set.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.LLM.AnthropicKey = key
	}
	if key := os.Getenv("THEPILL_LLM_ANTHROPIC_KEY"); key != "" {
		cfg.LLM.AnthropicKey = key
	}
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		cfg.Finnhub.APIKey = key
	}
	if key := os.Getenv("THEPILL_FINNHUB_API_KEY"); key != "" {
		cfg.Finnhub.APIKey = key
	}
}

// Validate reports configuration problems that must stop startup.
// A missing Finnhub key is not one of them.
func (c *Config) Validate() error {
	if c.LLM.AnthropicKey == "" {
		return errors.New("anthropic API key is required (set ANTHROPIC_API_KEY)")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.Analysis.MaxTurns < 1 {
		return fmt.Errorf("analysis.max_turns must be at least 1, got %d", c.Analysis.MaxTurns)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api.port out of range: %d", c.API.Port)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
