package store

import (
	"context"

	"github.com/gabrieloporto/nexoshop/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) ListProducts(ctx context.Context, find *FindProduct) ([]*Product, error) {
	return s.driver.ListProducts(ctx, find)
}

// GetProduct returns a single product by ID, or nil when it does not exist.
func (s *Store) GetProduct(ctx context.Context, id int32) (*Product, error) {
	products, err := s.driver.ListProducts(ctx, &FindProduct{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return products[0], nil
}

// SearchProducts performs a case-insensitive name/description substring search.
func (s *Store) SearchProducts(ctx context.Context, query string, limit int) ([]*Product, error) {
	return s.driver.SearchProducts(ctx, query, limit)
}

func (s *Store) CreateOrder(ctx context.Context, create *Order) (*Order, error) {
	return s.driver.CreateOrder(ctx, create)
}

func (s *Store) ListOrders(ctx context.Context, find *FindOrder) ([]*Order, error) {
	return s.driver.ListOrders(ctx, find)
}

// GetOrder returns a single order by ID, or nil when it does not exist.
func (s *Store) GetOrder(ctx context.Context, id int32) (*Order, error) {
	orders, err := s.driver.ListOrders(ctx, &FindOrder{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return orders[0], nil
}

func (s *Store) GetShippingCost(ctx context.Context, postalCode string) (*ShippingCost, error) {
	return s.driver.GetShippingCost(ctx, postalCode)
}
