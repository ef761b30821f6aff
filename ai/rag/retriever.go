package rag

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/ai"
	"github.com/gabrieloporto/nexoshop/ai/vector"
	"github.com/gabrieloporto/nexoshop/store"
)

// ErrEmbeddingUnavailable is returned when the embedding provider cannot be
// reached or is misconfigured. Fatal for the turn; never retried silently.
var ErrEmbeddingUnavailable = errors.New("rag: embedding provider unavailable")

// Match is a retrieved product with its similarity score.
type Match struct {
	Product *store.Product `json:"product"`
	Score   float32        `json:"score"`
}

// RetrieveOptions tunes a single retrieval call.
type RetrieveOptions struct {
	// TopK is the number of candidates fetched from the index (default 5).
	TopK int

	// Filter restricts candidates on metadata, e.g. vector.InStockOnly().
	Filter *vector.Filter

	// MinScore drops matches scoring below it. Zero is fully permissive.
	MinScore float32
}

// Retriever embeds a free-text query and ranks catalog products against it.
// Stateless per call: every call re-embeds and re-queries. Results keep the
// index order; no re-ranking happens here.
type Retriever struct {
	embedder ai.EmbeddingService
	index    vector.Index
}

func NewRetriever(embedder ai.EmbeddingService, index vector.Index) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, opts RetrieveOptions) ([]Match, error) {
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = 5
	}

	queryVector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errors.Wrap(ErrEmbeddingUnavailable, err.Error())
	}

	results, err := r.index.Query(ctx, queryVector, topK, opts.Filter)
	if err != nil {
		return nil, errors.Wrap(err, "vector index query failed")
	}

	matches := make([]Match, 0, len(results))
	for _, result := range results {
		if result.Score < opts.MinScore {
			continue
		}
		matches = append(matches, Match{
			Product: ProductFromMetadata(result.Metadata),
			Score:   result.Score,
		})
	}

	slog.Debug("retrieval completed",
		"query_len", len(query),
		"candidates", len(results),
		"matches", len(matches),
	)

	return matches, nil
}

// Products extracts the product list from a slice of matches.
func Products(matches []Match) []*store.Product {
	products := make([]*store.Product, len(matches))
	for i, m := range matches {
		products[i] = m.Product
	}
	return products
}
