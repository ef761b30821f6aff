// Package memdb implements an in-memory store driver for demo mode and tests.
package memdb

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/store"
)

// DB keeps the whole catalog in memory. It exists so the server can run in
// demo mode without a PostgreSQL instance.
type DB struct {
	mu sync.RWMutex

	products      []*store.Product
	orders        []*store.Order
	shippingCosts map[string]float64

	nextProductID int32
	nextOrderID   int32
}

// NewDB creates an empty in-memory driver.
func NewDB() *DB {
	return &DB{
		shippingCosts: map[string]float64{},
		nextProductID: 1,
		nextOrderID:   1,
	}
}

// NewSeededDB creates an in-memory driver preloaded with the demo catalog.
func NewSeededDB() *DB {
	db := NewDB()
	for _, product := range demoCatalog() {
		db.addProduct(product)
	}
	for postalCode, price := range demoShippingCosts() {
		db.shippingCosts[postalCode] = price
	}
	return db
}

func (d *DB) GetDB() *sql.DB {
	return nil
}

func (d *DB) Close() error {
	return nil
}

func (d *DB) Migrate(_ context.Context) error {
	return nil
}

func (d *DB) addProduct(product *store.Product) {
	product.ID = d.nextProductID
	d.nextProductID++
	d.products = append(d.products, product)
}

func (d *DB) ListProducts(_ context.Context, find *store.FindProduct) ([]*store.Product, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := []*store.Product{}
	for _, product := range d.products {
		if find != nil {
			if find.ID != nil && product.ID != *find.ID {
				continue
			}
			if find.Category != nil && product.Category != *find.Category {
				continue
			}
		}
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}

func (d *DB) SearchProducts(_ context.Context, search string, limit int) ([]*store.Product, error) {
	if limit <= 0 {
		limit = 20
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	needle := strings.ToLower(search)
	list := []*store.Product{}
	for _, product := range d.products {
		if !strings.Contains(strings.ToLower(product.Name), needle) &&
			!strings.Contains(strings.ToLower(product.Description), needle) {
			continue
		}
		clone := *product
		list = append(list, &clone)
		if len(list) == limit {
			break
		}
	}
	return list, nil
}

func (d *DB) CreateOrder(_ context.Context, create *store.Order) (*store.Order, error) {
	if create == nil {
		return nil, errors.New("order is nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	create.ID = d.nextOrderID
	d.nextOrderID++
	clone := *create
	d.orders = append(d.orders, &clone)
	return create, nil
}

func (d *DB) ListOrders(_ context.Context, find *store.FindOrder) ([]*store.Order, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := []*store.Order{}
	for _, order := range d.orders {
		if find != nil {
			if find.ID != nil && order.ID != *find.ID {
				continue
			}
			if find.CustomerEmail != nil && order.CustomerEmail != *find.CustomerEmail {
				continue
			}
		}
		clone := *order
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs < list[j].CreatedTs })
	return list, nil
}

func (d *DB) GetShippingCost(_ context.Context, postalCode string) (*store.ShippingCost, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	price, ok := d.shippingCosts[postalCode]
	if !ok {
		return nil, nil
	}
	return &store.ShippingCost{PostalCode: postalCode, Price: price}, nil
}
