package postgres

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/ai/vector"
)

// VectorIndex is the pgvector-backed implementation of vector.Index. Product
// vectors live in the table named by the profile's vector index name
// (default product_embedding), together with a denormalized JSONB metadata
// copy of the catalog record.
type VectorIndex struct {
	db    *DB
	table string
}

// NewVectorIndex creates a vector index over the given database.
func NewVectorIndex(db *DB) *VectorIndex {
	return &VectorIndex{
		db:    db,
		table: db.vectorTable(),
	}
}

func (v *VectorIndex) Upsert(ctx context.Context, records []vector.Record) error {
	if len(records) == 0 {
		return errors.New("empty record batch")
	}

	stmt := `
		INSERT INTO ` + v.table + ` (id, embedding, metadata, updated_ts)
		VALUES (` + placeholders(4) + `)
		ON CONFLICT (id)
		DO UPDATE SET
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata,
			updated_ts = EXCLUDED.updated_ts
	`

	now := time.Now().Unix()
	for _, record := range records {
		metadata, err := json.Marshal(record.Metadata)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal metadata of record %s", record.ID)
		}

		_, err = v.db.db.ExecContext(ctx, stmt,
			record.ID,
			pgvector.NewVector(record.Values),
			metadata,
			now,
		)
		if err != nil {
			return errors.Wrapf(err, "failed to upsert embedding record %s", record.ID)
		}
	}

	return nil
}

func (v *VectorIndex) Query(ctx context.Context, queryVector []float32, topK int, filter *vector.Filter) ([]vector.Match, error) {
	if len(queryVector) == 0 {
		return nil, errors.New("query vector cannot be empty")
	}
	if topK <= 0 {
		topK = 10
	}

	where, args := []string{"1 = 1"}, []any{}
	if filter != nil {
		if filter.MinStock != nil {
			where, args = append(where, "(metadata->>'stock')::int > "+placeholder(len(args)+1)), append(args, *filter.MinStock)
		}
		if filter.Category != nil {
			where, args = append(where, "metadata->>'category' = "+placeholder(len(args)+1)), append(args, *filter.Category)
		}
	}

	// The <=> operator computes cosine distance (1 - cosine_similarity),
	// so ordering by distance ASC yields the most similar records first.
	argIdx := len(args) + 1
	query := `
		SELECT
			id, metadata,
			1 - (embedding <=> ` + placeholder(argIdx) + `) AS score
		FROM ` + v.table + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY embedding <=> ` + placeholder(argIdx+1) + `
		LIMIT ` + placeholder(argIdx+2)

	pgv := pgvector.NewVector(queryVector)
	args = append(args, pgv, pgv, topK)

	rows, err := v.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query product embeddings")
	}
	defer rows.Close()

	matches := []vector.Match{}
	for rows.Next() {
		var match vector.Match
		var metadata []byte
		if err := rows.Scan(&match.ID, &metadata, &match.Score); err != nil {
			return nil, errors.Wrap(err, "failed to scan embedding match")
		}

		if err := json.Unmarshal(metadata, &match.Metadata); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal metadata of record %s", match.ID)
		}

		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

func (v *VectorIndex) DeleteOne(ctx context.Context, id string) error {
	stmt := `DELETE FROM ` + v.table + ` WHERE id = ` + placeholder(1)
	if _, err := v.db.db.ExecContext(ctx, stmt, id); err != nil {
		return errors.Wrapf(err, "failed to delete embedding record %s", id)
	}
	return nil
}

func (v *VectorIndex) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	stmt := `DELETE FROM ` + v.table + ` WHERE id = ANY(` + placeholder(1) + `)`
	if _, err := v.db.db.ExecContext(ctx, stmt, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "failed to delete embedding records")
	}
	return nil
}

func (v *VectorIndex) DeleteAll(ctx context.Context) error {
	if _, err := v.db.db.ExecContext(ctx, `DELETE FROM `+v.table); err != nil {
		return errors.Wrap(err, "failed to delete all embedding records")
	}
	return nil
}

func (v *VectorIndex) Stats(ctx context.Context) (*vector.IndexStats, error) {
	stats := &vector.IndexStats{
		Dimensions: v.db.profile.AIEmbeddingDimensions,
	}

	err := v.db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+v.table).Scan(&stats.TotalRecordCount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count embedding records")
	}

	return stats, nil
}
