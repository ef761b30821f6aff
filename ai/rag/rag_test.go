package rag

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/ai"
	"github.com/gabrieloporto/nexoshop/ai/vector"
	"github.com/gabrieloporto/nexoshop/store"
)

// stubEmbedder returns canned vectors keyed by input text, or a fixed
// fallback vector when the text is unknown.
type stubEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	failOn   map[string]error
	calls    int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, 0, len(texts))
	for _, text := range texts {
		s.calls++
		if err, ok := s.failOn[text]; ok {
			return nil, err
		}
		if v, ok := s.vectors[text]; ok {
			result = append(result, v)
			continue
		}
		result = append(result, s.fallback)
	}
	return result, nil
}

func (s *stubEmbedder) Dimensions() int {
	return len(s.fallback)
}

// stubIndex returns fixed matches and records upserts.
type stubIndex struct {
	matches   []vector.Match
	queryErr  error
	upsertErr error
	upserted  [][]vector.Record
	filter    *vector.Filter
}

func (s *stubIndex) Upsert(_ context.Context, records []vector.Record) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserted = append(s.upserted, records)
	return nil
}

func (s *stubIndex) Query(_ context.Context, _ []float32, topK int, filter *vector.Filter) ([]vector.Match, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	s.filter = filter

	matches := s.matches
	if filter != nil && filter.MinStock != nil {
		filtered := make([]vector.Match, 0, len(matches))
		for _, m := range matches {
			if stock, ok := m.Metadata["stock"].(int32); ok && stock > *filter.MinStock {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}
	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

func (s *stubIndex) DeleteOne(context.Context, string) error    { return nil }
func (s *stubIndex) DeleteMany(context.Context, []string) error { return nil }
func (s *stubIndex) DeleteAll(context.Context) error            { return nil }

func (s *stubIndex) Stats(context.Context) (*vector.IndexStats, error) {
	var count int64
	for _, batch := range s.upserted {
		count += int64(len(batch))
	}
	return &vector.IndexStats{TotalRecordCount: count}, nil
}

// stubLLM records the messages it was called with and returns a canned answer.
type stubLLM struct {
	answer   string
	err      error
	messages []ai.Message
}

func (s *stubLLM) Chat(_ context.Context, messages []ai.Message) (string, error) {
	s.messages = messages
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

// fakeDriver serves a fixed product catalog. Only the product methods are
// exercised by the rag package.
type fakeDriver struct {
	products []*store.Product
	listErr  error
}

func (d *fakeDriver) GetDB() *sql.DB { return nil }

func (d *fakeDriver) ListProducts(_ context.Context, find *store.FindProduct) ([]*store.Product, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	if find != nil && find.ID != nil {
		for _, p := range d.products {
			if p.ID == *find.ID {
				return []*store.Product{p}, nil
			}
		}
		return nil, nil
	}
	return d.products, nil
}

func (d *fakeDriver) SearchProducts(context.Context, string, int) ([]*store.Product, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeDriver) CreateOrder(context.Context, *store.Order) (*store.Order, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeDriver) ListOrders(context.Context, *store.FindOrder) ([]*store.Order, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeDriver) GetShippingCost(context.Context, string) (*store.ShippingCost, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeDriver) Migrate(context.Context) error { return nil }
func (d *fakeDriver) Close() error                  { return nil }
