package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDefaults(t *testing.T) {
	clearEnvVars(t)

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "text-embedding-3-small", p.AIEmbeddingModel)
	assert.Equal(t, 768, p.AIEmbeddingDimensions)
	assert.Equal(t, "gpt-4o-mini", p.AILLMModel)
	assert.Equal(t, "product_embedding", p.VectorIndexName)
	assert.False(t, p.IsAIEnabled())
}

func TestProfileFromEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("NEXOSHOP_AI_EMBEDDING_API_KEY", "embed-key")
	t.Setenv("NEXOSHOP_AI_LLM_API_KEY", "llm-key")
	t.Setenv("NEXOSHOP_AI_EMBEDDING_DIMENSIONS", "1024")

	p := &Profile{}
	p.FromEnv()

	assert.True(t, p.IsAIEnabled())
	assert.Equal(t, 1024, p.AIEmbeddingDimensions)
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{
			name:    "demo mode without DSN",
			profile: Profile{Mode: "demo", AIEmbeddingDimensions: 768},
			wantErr: false,
		},
		{
			name:    "prod mode without DSN",
			profile: Profile{Mode: "prod", AIEmbeddingDimensions: 768},
			wantErr: true,
		},
		{
			name:    "prod mode with DSN",
			profile: Profile{Mode: "prod", DSN: "postgresql://localhost/nexoshop", AIEmbeddingDimensions: 768},
			wantErr: false,
		},
		{
			name:    "invalid dimensions",
			profile: Profile{Mode: "demo", AIEmbeddingDimensions: 0},
			wantErr: true,
		},
		{
			name:    "custom vector index name",
			profile: Profile{Mode: "demo", AIEmbeddingDimensions: 768, VectorIndexName: "catalog_vectors_v2"},
			wantErr: false,
		},
		{
			name:    "vector index name with injection attempt",
			profile: Profile{Mode: "demo", AIEmbeddingDimensions: 768, VectorIndexName: "x; DROP TABLE products"},
			wantErr: true,
		},
		{
			name:    "vector index name starting with a digit",
			profile: Profile{Mode: "demo", AIEmbeddingDimensions: 768, VectorIndexName: "1table"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateDefaultsVectorIndexName(t *testing.T) {
	p := Profile{Mode: "demo", AIEmbeddingDimensions: 768}
	require.NoError(t, p.Validate())
	assert.Equal(t, "product_embedding", p.VectorIndexName)
}

func TestValidateNormalizesUnknownMode(t *testing.T) {
	p := Profile{Mode: "staging", AIEmbeddingDimensions: 768}
	require.NoError(t, p.Validate())
	assert.Equal(t, "demo", p.Mode)
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NEXOSHOP_AI_EMBEDDING_MODEL",
		"NEXOSHOP_AI_EMBEDDING_API_KEY",
		"NEXOSHOP_AI_EMBEDDING_BASE_URL",
		"NEXOSHOP_AI_EMBEDDING_DIMENSIONS",
		"NEXOSHOP_AI_LLM_MODEL",
		"NEXOSHOP_AI_LLM_API_KEY",
		"NEXOSHOP_AI_LLM_BASE_URL",
		"NEXOSHOP_VECTOR_INDEX_NAME",
	} {
		t.Setenv(key, "")
	}
}
