package config

import (
	"strings"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	DefaultPath           = "config.json"
	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

// Config holds all runtime configuration for the chat client.
type Config struct {
	MaxTurns      int
	Verbose       bool
	SearchResults int
	Temperature   float64
	MaxTokens     int64

	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		MaxTurns:      10,
		Verbose:       false,
		SearchResults: 5,
		Temperature:   0,
		MaxTokens:     1024,
		Provider:      ProviderOpenAI,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)

	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	if cfg.Model == "" {
		switch cfg.Provider {
		case ProviderAnthropic:
			cfg.Model = DefaultAnthropicModel
		default:
			cfg.Model = DefaultOpenAIModel
		}
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 1
	}
	if cfg.SearchResults <= 0 {
		cfg.SearchResults = 5
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	return cfg
}
