package postgres

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Migrate creates the storefront schema. Statements are idempotent so the
// migration can run on every startup.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range d.migrationStatements() {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to execute migration statement: %s", stmt)
		}
	}

	return nil
}

func (d *DB) migrationStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10, 2) NOT NULL,
			image TEXT,
			category TEXT NOT NULL,
			stock INTEGER NOT NULL DEFAULT 10
		)`,
		`CREATE TABLE IF NOT EXISTS shipping_costs (
			postal_code TEXT PRIMARY KEY,
			price NUMERIC(10, 2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			customer_email TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			shipping_address TEXT NOT NULL,
			shipping_city TEXT NOT NULL,
			shipping_province TEXT NOT NULL,
			shipping_postal_code TEXT,
			shipping_method TEXT NOT NULL,
			shipping_price NUMERIC(10, 2) NOT NULL,
			subtotal NUMERIC(10, 2) NOT NULL,
			total NUMERIC(10, 2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_ts BIGINT NOT NULL,
			items JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer_email ON orders (customer_email)`,
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			embedding vector(%d) NOT NULL,
			metadata JSONB NOT NULL,
			updated_ts BIGINT NOT NULL
		)`, d.vectorTable(), d.profile.AIEmbeddingDimensions),
	}
}
