package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates the schema, including the pgvector extension and the
	// product embedding table used by the vector index.
	Migrate(ctx context.Context) error

	ListProducts(ctx context.Context, find *FindProduct) ([]*Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]*Product, error)

	CreateOrder(ctx context.Context, create *Order) (*Order, error)
	ListOrders(ctx context.Context, find *FindOrder) ([]*Order, error)

	GetShippingCost(ctx context.Context, postalCode string) (*ShippingCost, error)
}
