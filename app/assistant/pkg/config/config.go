package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMissingModels is returned when a remote provider is configured without any model names.
var ErrMissingModels = errors.New("llm provider configured without models")

// APIKeyEnv overrides an empty llm.api_key.
const APIKeyEnv = "SCI_AI_API_KEY"

// DefaultTemperature applies when llm.temperature is absent. An explicit 0 is kept.
const DefaultTemperature float32 = 0.7

// Config assistant configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Forecast    ForecastConfig    `yaml:"forecast"`
	Roster      RosterConfig      `yaml:"roster"`
}

// LLMConfig remote generative model settings.
// Provider is "openai" (any OpenAI-compatible endpoint), "gemini" or empty for local-only mode.
type LLMConfig struct {
	Provider       string   `yaml:"provider"`
	BaseURL        string   `yaml:"base_url"`
	APIKey         string   `yaml:"api_key"`
	Models         []string `yaml:"models"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Temperature    *float32 `yaml:"temperature"`
	MaxHistory     int      `yaml:"max_history"`
	// MaxSessions caps the conversations held in memory; the least recently
	// used idle one is dropped first.
	MaxSessions int `yaml:"max_sessions"`
	// SessionIdleMinutes forgets a conversation unused for this long.
	SessionIdleMinutes int `yaml:"session_idle_minutes"`
}

// SamplingTemperature the configured temperature or DefaultTemperature
func (l LLMConfig) SamplingTemperature() float32 {
	if l.Temperature == nil {
		return DefaultTemperature
	}
	return *l.Temperature
}

// LogConfig logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig remote call throttling
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// ForecastConfig forecast defaults
type ForecastConfig struct {
	DefaultYears []int `yaml:"default_years"`
}

// RosterConfig synthetic roster parameters
type RosterConfig struct {
	Seed int64 `yaml:"seed"`
	Size int    `yaml:"size"`
}

// Default returns a configuration that runs fully local.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// LoadConfig loads the yaml file at path and fills unset fields with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(APIKeyEnv)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 30
	}
	if c.LLM.MaxHistory <= 0 {
		c.LLM.MaxHistory = 40
	}
	if c.LLM.Temperature == nil {
		t := DefaultTemperature
		c.LLM.Temperature = &t
	}
	if c.LLM.MaxSessions <= 0 {
		c.LLM.MaxSessions = 1000
	}
	if c.LLM.SessionIdleMinutes <= 0 {
		c.LLM.SessionIdleMinutes = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 30
	}
	if len(c.Forecast.DefaultYears) == 0 {
		c.Forecast.DefaultYears = []int{2570, 2571}
	}
	if c.Roster.Seed == 0 {
		c.Roster.Seed = 42
	}
	if c.Roster.Size <= 0 {
		c.Roster.Size = 50
	}
}

// Validate reports configuration that can never work.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "":
		return nil
	case "openai", "gemini":
		if len(c.LLM.Models) == 0 {
			return fmt.Errorf("provider %s: %w", c.LLM.Provider, ErrMissingModels)
		}
		return nil
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
}

// RemoteEnabled reports whether a remote model should be consulted.
func (c *Config) RemoteEnabled() bool {
	return c.LLM.Provider != "" && c.LLM.APIKey != "" && len(c.LLM.Models) > 0
}
