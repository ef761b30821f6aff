package ai

import (
	"errors"

	"github.com/gabrieloporto/nexoshop/internal/profile"
)

// ErrNotConfigured is returned when a gateway is constructed without the
// credentials it needs. Configuration errors are fatal and never retried.
var ErrNotConfigured = errors.New("ai: provider is not configured")

// Config represents AI configuration.
type Config struct {
	Embedding EmbeddingConfig
	LLM       LLMConfig
	Enabled   bool
}

// EmbeddingConfig represents vector embedding configuration.
type EmbeddingConfig struct {
	Model      string
	APIKey     string
	BaseURL    string
	Dimensions int
}

// LLMConfig represents generation model configuration.
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 1024
	Temperature float32 // default: 0.7
}

// NewConfigFromProfile creates AI config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{
		Enabled: p.IsAIEnabled(),
	}

	cfg.Embedding = EmbeddingConfig{
		Model:      p.AIEmbeddingModel,
		APIKey:     p.AIEmbeddingAPIKey,
		BaseURL:    p.AIEmbeddingBaseURL,
		Dimensions: p.AIEmbeddingDimensions,
	}

	cfg.LLM = LLMConfig{
		Model:       p.AILLMModel,
		APIKey:      p.AILLMAPIKey,
		BaseURL:     p.AILLMBaseURL,
		MaxTokens:   1024,
		Temperature: 0.7,
	}

	return cfg
}
