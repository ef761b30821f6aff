// Package vector defines the vector index gateway used for semantic product
// retrieval. The production implementation is pgvector-backed; an in-memory
// implementation exists for demo mode and tests.
package vector

import "context"

// Record is a vector with its denormalized metadata, keyed by a stable ID
// ("product-{id}" for catalog products).
type Record struct {
	ID       string
	Values   []float32
	Metadata map[string]any
}

// Match is a single query result. Score is the cosine similarity between the
// query vector and the stored vector, in [0, 1].
type Match struct {
	ID       string
	Score    float32
	Metadata map[string]any
}

// Filter restricts query candidates on metadata fields before/alongside
// similarity ranking. Nil pointer fields are not applied.
type Filter struct {
	// MinStock keeps only records whose stock is strictly greater than the
	// given value. MinStock of 0 is the usual "in stock only" filter.
	MinStock *int32
	Category *string
}

// IndexStats describes the current state of the index.
type IndexStats struct {
	TotalRecordCount int64
	Dimensions       int
}

// Index is the vector index gateway.
type Index interface {
	// Upsert inserts or replaces records. An empty batch is an error.
	Upsert(ctx context.Context, records []Record) error

	// Query returns up to topK matches for the given vector in descending
	// score order.
	Query(ctx context.Context, vector []float32, topK int, filter *Filter) ([]Match, error)

	DeleteOne(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
	DeleteAll(ctx context.Context) error

	Stats(ctx context.Context) (*IndexStats, error)
}

// InStockOnly is a reusable filter matching products with stock > 0.
func InStockOnly() *Filter {
	var zero int32
	return &Filter{MinStock: &zero}
}
