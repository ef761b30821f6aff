// Package memoryindex provides an in-memory vector.Index using brute-force
// cosine similarity. It backs demo mode (no PostgreSQL required) and tests.
package memoryindex

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/ai/vector"
)

type Index struct {
	mu      sync.RWMutex
	records map[string]vector.Record
}

func New() *Index {
	return &Index{
		records: make(map[string]vector.Record),
	}
}

func (i *Index) Upsert(_ context.Context, records []vector.Record) error {
	if len(records) == 0 {
		return errors.New("empty record batch")
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	for _, r := range records {
		if r.ID == "" {
			return errors.New("record ID cannot be empty")
		}
		if len(r.Values) == 0 {
			return errors.Errorf("record %s has an empty vector", r.ID)
		}
		i.records[r.ID] = r
	}
	return nil
}

func (i *Index) Query(_ context.Context, queryVector []float32, topK int, filter *vector.Filter) ([]vector.Match, error) {
	if len(queryVector) == 0 {
		return nil, errors.New("query vector cannot be empty")
	}
	if topK <= 0 {
		topK = 10
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	matches := make([]vector.Match, 0, len(i.records))
	for _, r := range i.records {
		if !matchesFilter(r.Metadata, filter) {
			continue
		}
		matches = append(matches, vector.Match{
			ID:       r.ID,
			Score:    cosineSimilarity(queryVector, r.Values),
			Metadata: r.Metadata,
		})
	}

	sort.Slice(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

func (i *Index) DeleteOne(_ context.Context, id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.records, id)
	return nil
}

func (i *Index) DeleteMany(_ context.Context, ids []string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, id := range ids {
		delete(i.records, id)
	}
	return nil
}

func (i *Index) DeleteAll(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.records = make(map[string]vector.Record)
	return nil
}

func (i *Index) Stats(_ context.Context) (*vector.IndexStats, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	stats := &vector.IndexStats{
		TotalRecordCount: int64(len(i.records)),
	}
	for _, r := range i.records {
		stats.Dimensions = len(r.Values)
		break
	}
	return stats, nil
}

func matchesFilter(metadata map[string]any, filter *vector.Filter) bool {
	if filter == nil {
		return true
	}
	if filter.MinStock != nil {
		stock, ok := metadataInt32(metadata["stock"])
		if !ok || stock <= *filter.MinStock {
			return false
		}
	}
	if filter.Category != nil {
		category, _ := metadata["category"].(string)
		if category != *filter.Category {
			return false
		}
	}
	return true
}

func metadataInt32(v any) (int32, bool) {
	switch n := v.(type) {
	case int32:
		return n, true
	case int:
		return int32(n), true
	case int64:
		return int32(n), true
	case float64:
		return int32(n), true
	default:
		return 0, false
	}
}

func cosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
