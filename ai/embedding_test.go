package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingServiceRequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(&EmbeddingConfig{Model: "text-embedding-3-small", Dimensions: 768})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestEmbeddingServiceDimensions(t *testing.T) {
	svc, err := NewEmbeddingService(&EmbeddingConfig{
		APIKey:     "test-key",
		Model:      "text-embedding-3-small",
		Dimensions: 1024,
	})
	require.NoError(t, err)
	assert.Equal(t, 1024, svc.Dimensions())
}
