package memoryindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrieloporto/nexoshop/ai/vector"
)

func stockRecord(id string, values []float32, stock int32) vector.Record {
	return vector.Record{
		ID:     id,
		Values: values,
		Metadata: map[string]any{
			"name":  id,
			"stock": stock,
		},
	}
}

func TestQueryRanksByCosineSimilarity(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Upsert(ctx, []vector.Record{
		stockRecord("product-1", []float32{1, 0, 0}, 5),
		stockRecord("product-2", []float32{0, 1, 0}, 5),
		stockRecord("product-3", []float32{0.9, 0.1, 0}, 5),
	}))

	matches, err := idx.Query(ctx, []float32{1, 0, 0}, 2, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "product-1", matches[0].ID)
	assert.Equal(t, "product-3", matches[1].ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestQueryStockFilter(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Upsert(ctx, []vector.Record{
		stockRecord("product-1", []float32{1, 0}, 3),
		stockRecord("product-2", []float32{1, 0}, 0),
	}))

	matches, err := idx.Query(ctx, []float32{1, 0}, 10, vector.InStockOnly())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "product-1", matches[0].ID)
}

func TestUpsertReplacesExistingRecord(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Upsert(ctx, []vector.Record{stockRecord("product-1", []float32{1, 0}, 1)}))
	require.NoError(t, idx.Upsert(ctx, []vector.Record{stockRecord("product-1", []float32{0, 1}, 1)}))

	stats, err := idx.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalRecordCount)
}

func TestUpsertRejectsEmptyBatch(t *testing.T) {
	err := New().Upsert(context.Background(), nil)
	require.Error(t, err)
}

func TestDeleteAll(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Upsert(ctx, []vector.Record{stockRecord("product-1", []float32{1}, 1)}))
	require.NoError(t, idx.DeleteAll(ctx))

	stats, err := idx.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRecordCount)
}
