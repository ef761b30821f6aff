// Package postgres implements the store driver and the pgvector-backed
// vector index on PostgreSQL.
package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/internal/profile"
)

// DB is the PostgreSQL implementation of store.Driver.
type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL connection with the profile's DSN.
func NewDB(profile *profile.Profile) (*DB, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database with dsn: %s", profile.DSN)
	}

	return &DB{
		db:      db,
		profile: profile,
	}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

// vectorTable returns the name of the product vector table. The profile
// validates it as a plain identifier, so it is safe to splice into DDL and
// queries (identifiers cannot be bound as parameters).
func (d *DB) vectorTable() string {
	if d.profile.VectorIndexName == "" {
		return "product_embedding"
	}
	return d.profile.VectorIndexName
}

func (d *DB) Close() error {
	return d.db.Close()
}

// placeholder returns the positional parameter for the given 1-based index.
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// placeholders returns a comma-joined list of positional parameters ($1..$n).
func placeholders(n int) string {
	list := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		list = append(list, placeholder(i))
	}
	return strings.Join(list, ", ")
}
