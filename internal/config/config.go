// Package config loads the optional YAML configuration file and applies
// NODAYSOFF_* environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Profile ProfileConfig `yaml:"profile"`
	Logging LoggingConfig `yaml:"logging"`
	Timer   TimerConfig   `yaml:"timer"`
	Effects EffectsConfig `yaml:"effects"`
	Retry   RetryConfig   `yaml:"retry"`
	Coach   CoachConfig   `yaml:"coach"`
}

type StorageConfig struct {
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"` // SQLite file; empty means the data dir default
	PostgresDSN string `yaml:"postgres_dsn"`
}

type ProfileConfig struct {
	UserID string `yaml:"user_id"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type TimerConfig struct {
	LeadInSeconds int `yaml:"lead_in_seconds"`
	BeepSeconds   int `yaml:"beep_seconds"`
}

type EffectsConfig struct {
	Bell          bool   `yaml:"bell"`
	SpeechCommand string `yaml:"speech_command"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// CoachConfig selects the optional recap provider. An empty provider
// disables the coach.
type CoachConfig struct {
	Provider        string        `yaml:"provider"`
	Model           string        `yaml:"model"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string        `yaml:"openai_api_key"`
	OpenAIBaseURL   string        `yaml:"openai_base_url"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"`
	Timeout         time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendSQLite},
		Logging: LoggingConfig{Level: "info"},
		Timer:   TimerConfig{LeadInSeconds: 2, BeepSeconds: 5},
		Effects: EffectsConfig{Bell: true},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 200 * time.Millisecond,
			MaxWait:     2 * time.Second,
			Multiplier:  2.0,
		},
		Coach: CoachConfig{Timeout: 20 * time.Second},
	}
}

// DefaultPath resolves the config file location:
// 1. $XDG_CONFIG_HOME/nodaysoff/config.yaml
// 2. ~/.config/nodaysoff/config.yaml
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "nodaysoff", "config.yaml"), nil
}

// Load reads config from a YAML file on top of Default, then applies
// environment variable overrides. A missing file is not an error.
//
//	NODAYSOFF_DB, NODAYSOFF_STORAGE_BACKEND, NODAYSOFF_POSTGRES_DSN,
//	NODAYSOFF_USER_ID, NODAYSOFF_LOG_LEVEL, NODAYSOFF_LOG_FILE,
//	NODAYSOFF_SPEECH_COMMAND, NODAYSOFF_BELL,
//	NODAYSOFF_COACH_PROVIDER, NODAYSOFF_COACH_MODEL,
//	NODAYSOFF_ANTHROPIC_API_KEY, NODAYSOFF_OPENAI_API_KEY,
//	NODAYSOFF_OPENAI_BASE_URL, NODAYSOFF_GEMINI_API_KEY
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NODAYSOFF_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("NODAYSOFF_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("NODAYSOFF_POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("NODAYSOFF_USER_ID"); v != "" {
		cfg.Profile.UserID = v
	}
	if v := os.Getenv("NODAYSOFF_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("NODAYSOFF_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("NODAYSOFF_SPEECH_COMMAND"); v != "" {
		cfg.Effects.SpeechCommand = v
	}
	if v := os.Getenv("NODAYSOFF_BELL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Effects.Bell = b
		}
	}
	if v := os.Getenv("NODAYSOFF_COACH_PROVIDER"); v != "" {
		cfg.Coach.Provider = v
	}
	if v := os.Getenv("NODAYSOFF_COACH_MODEL"); v != "" {
		cfg.Coach.Model = v
	}
	if v := os.Getenv("NODAYSOFF_ANTHROPIC_API_KEY"); v != "" {
		cfg.Coach.AnthropicAPIKey = v
	}
	if v := os.Getenv("NODAYSOFF_OPENAI_API_KEY"); v != "" {
		cfg.Coach.OpenAIAPIKey = v
	}
	if v := os.Getenv("NODAYSOFF_OPENAI_BASE_URL"); v != "" {
		cfg.Coach.OpenAIBaseURL = v
	}
	if v := os.Getenv("NODAYSOFF_GEMINI_API_KEY"); v != "" {
		cfg.Coach.GeminiAPIKey = v
	}
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
	if c.Logging.Level != "" && !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Timer.LeadInSeconds < 0 {
		return fmt.Errorf("timer.lead_in_seconds must not be negative")
	}
	if c.Timer.BeepSeconds < 0 {
		return fmt.Errorf("timer.beep_seconds must not be negative")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	if c.Retry.Multiplier < 1 {
		return fmt.Errorf("retry.multiplier must be at least 1")
	}
	switch c.Coach.Provider {
	case "", "anthropic", "openai", "gemini", "mock":
	default:
		return fmt.Errorf("unknown coach provider: %q", c.Coach.Provider)
	}
	return nil
}
