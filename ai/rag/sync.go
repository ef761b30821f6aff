package rag

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/gabrieloporto/nexoshop/ai"
	"github.com/gabrieloporto/nexoshop/ai/vector"
	"github.com/gabrieloporto/nexoshop/store"
)

const (
	// upsertBatchSize bounds request payload size and gives partial-progress
	// visibility during a sync run.
	upsertBatchSize = 100

	// embedInterval paces embedding calls. Embedding providers throttle
	// aggressively on burst traffic, so the job stays strictly serial.
	embedInterval = 100 * time.Millisecond
)

// SyncReport summarizes a sync run. Upserted < CatalogTotal signals partial
// failure (skipped products), not a crash.
type SyncReport struct {
	CatalogTotal int
	Embedded     int
	Upserted     int
	Skipped      int
	Duration     time.Duration
}

// Syncer re-embeds the whole catalog and upserts it into the vector index.
// This batch job is the only bridge between the relational catalog and the
// index: consistency is eventual, established per run.
type Syncer struct {
	store    *store.Store
	embedder ai.EmbeddingService
	index    vector.Index
	limiter  *rate.Limiter
}

func NewSyncer(s *store.Store, embedder ai.EmbeddingService, index vector.Index) *Syncer {
	return &Syncer{
		store:    s,
		embedder: embedder,
		index:    index,
		limiter:  rate.NewLimiter(rate.Every(embedInterval), 1),
	}
}

// Run executes one full catalog sync. Per-product embedding failures are
// logged and skipped; an upsert failure aborts the job because it leaves the
// index in an unknown partial state that must be investigated.
func (s *Syncer) Run(ctx context.Context) (*SyncReport, error) {
	start := time.Now()

	products, err := s.store.ListProducts(ctx, &store.FindProduct{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list catalog products")
	}

	report := &SyncReport{CatalogTotal: len(products)}
	slog.Info("starting product index sync", "catalog_total", len(products))

	records := make([]vector.Record, 0, len(products))
	for _, product := range products {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "sync cancelled")
		}

		embedding, err := s.embedder.Embed(ctx, ProductText(product))
		if err != nil {
			slog.Warn("skipping product, embedding failed",
				"product_id", product.ID,
				"error", err,
			)
			report.Skipped++
			continue
		}
		if len(embedding) == 0 {
			slog.Warn("skipping product, empty embedding", "product_id", product.ID)
			report.Skipped++
			continue
		}

		records = append(records, ProductRecord(product, embedding))
		report.Embedded++
	}

	for i := 0; i < len(records); i += upsertBatchSize {
		end := i + upsertBatchSize
		if end > len(records) {
			end = len(records)
		}

		if err := s.index.Upsert(ctx, records[i:end]); err != nil {
			return report, errors.Wrapf(err, "upsert batch %d-%d failed, aborting sync", i, end)
		}
		report.Upserted = end
		slog.Info("upserted batch", "synced", end, "total", len(records))
	}

	report.Duration = time.Since(start)
	slog.Info("product index sync finished",
		"catalog_total", report.CatalogTotal,
		"embedded", report.Embedded,
		"upserted", report.Upserted,
		"skipped", report.Skipped,
		"duration", report.Duration,
	)

	return report, nil
}
