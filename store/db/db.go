// Package db selects the store driver for the current profile.
package db

import (
	"github.com/gabrieloporto/nexoshop/internal/profile"
	"github.com/gabrieloporto/nexoshop/store"
	"github.com/gabrieloporto/nexoshop/store/db/memdb"
	"github.com/gabrieloporto/nexoshop/store/db/postgres"
)

// NewDBDriver creates the store driver for the profile. Demo mode runs on a
// seeded in-memory catalog; every other mode requires PostgreSQL.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	if profile.IsDemo() {
		return memdb.NewSeededDB(), nil
	}
	return postgres.NewDB(profile)
}
