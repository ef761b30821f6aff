package profile

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is configuration to start main server.
type Profile struct {
	// Embedding provider configuration (OpenAI-compatible protocol).
	// The same model must be used at index time and query time so that
	// product vectors and query vectors stay comparable.
	AIEmbeddingModel      string
	AIEmbeddingAPIKey     string
	AIEmbeddingBaseURL    string
	AIEmbeddingDimensions int

	// Generation model configuration (OpenAI-compatible protocol).
	AILLMModel   string
	AILLMAPIKey  string
	AILLMBaseURL string

	// Vector index name. The pgvector-backed index stores product vectors
	// in a table named after it.
	VectorIndexName string

	Mode    string // dev, demo, prod
	Addr    string
	Port    int
	DSN     string // PostgreSQL data source name
	Version string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsDemo returns true when the server runs on the seeded in-memory catalog.
func (p *Profile) IsDemo() bool {
	return p.Mode == "demo"
}

// IsAIEnabled returns true if both the embedding and generation providers
// are configured. The storefront CRUD API works without AI; the chat and
// semantic search endpoints require it.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEmbeddingAPIKey != "" && p.AILLMAPIKey != ""
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	p.AIEmbeddingModel = getEnvOrDefault("NEXOSHOP_AI_EMBEDDING_MODEL", "text-embedding-3-small")
	p.AIEmbeddingAPIKey = getEnvOrDefault("NEXOSHOP_AI_EMBEDDING_API_KEY", "")
	p.AIEmbeddingBaseURL = getEnvOrDefault("NEXOSHOP_AI_EMBEDDING_BASE_URL", "")
	p.AIEmbeddingDimensions = getEnvOrDefaultInt("NEXOSHOP_AI_EMBEDDING_DIMENSIONS", 768)

	p.AILLMModel = getEnvOrDefault("NEXOSHOP_AI_LLM_MODEL", "gpt-4o-mini")
	p.AILLMAPIKey = getEnvOrDefault("NEXOSHOP_AI_LLM_API_KEY", "")
	p.AILLMBaseURL = getEnvOrDefault("NEXOSHOP_AI_LLM_BASE_URL", "")

	p.VectorIndexName = getEnvOrDefault("NEXOSHOP_VECTOR_INDEX_NAME", "product_embedding")
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode != "demo" && p.DSN == "" {
		return errors.New("database DSN is required outside demo mode")
	}

	if p.AIEmbeddingDimensions <= 0 {
		return errors.Errorf("invalid embedding dimensions: %d", p.AIEmbeddingDimensions)
	}

	if p.VectorIndexName == "" {
		p.VectorIndexName = "product_embedding"
	}
	// The index name becomes a table identifier, which cannot be bound as a
	// query parameter. Restrict it to a plain identifier.
	if !isIdentifier(p.VectorIndexName) {
		return errors.Errorf("invalid vector index name: %q", p.VectorIndexName)
	}

	return nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
