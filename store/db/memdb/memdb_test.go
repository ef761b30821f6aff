package memdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrieloporto/nexoshop/store"
)

func TestSeededCatalog(t *testing.T) {
	db := NewSeededDB()
	ctx := context.Background()

	products, err := db.ListProducts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, products, 5)

	category := "Indumentaria"
	products, err = db.ListProducts(ctx, &store.FindProduct{Category: &category})
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, category, p.Category)
	}

	id := products[0].ID
	byID, err := db.ListProducts(ctx, &store.FindProduct{ID: &id})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, products[0].Name, byID[0].Name)
}

func TestSearchProductsCaseInsensitive(t *testing.T) {
	db := NewSeededDB()

	products, err := db.SearchProducts(context.Background(), "RUNNING", 20)
	require.NoError(t, err)
	// Matches name and description.
	assert.Len(t, products, 2)

	products, err = db.SearchProducts(context.Background(), "compresión", 20)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Medias de Compresión", products[0].Name)
}

func TestOrdersRoundTrip(t *testing.T) {
	db := NewDB()
	ctx := context.Background()

	created, err := db.CreateOrder(ctx, &store.Order{
		CustomerEmail: "ana@example.com",
		CustomerName:  "Ana García",
		Status:        "pending",
		CreatedTs:     100,
		Items: []store.OrderItem{
			{ProductID: 1, Name: "Gorra Running", UnitPrice: 4500, Quantity: 2, Total: 9000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), created.ID)

	_, err = db.CreateOrder(ctx, &store.Order{CustomerEmail: "otro@example.com", CreatedTs: 50})
	require.NoError(t, err)

	email := "ana@example.com"
	orders, err := db.ListOrders(ctx, &store.FindOrder{CustomerEmail: &email})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ana García", orders[0].CustomerName)
	require.Len(t, orders[0].Items, 1)

	all, err := db.ListOrders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Oldest first.
	assert.Equal(t, int64(50), all[0].CreatedTs)
}

func TestShippingCosts(t *testing.T) {
	db := NewSeededDB()

	cost, err := db.GetShippingCost(context.Background(), "9410")
	require.NoError(t, err)
	require.NotNil(t, cost)
	assert.Equal(t, float64(4500), cost.Price)

	cost, err = db.GetShippingCost(context.Background(), "0000")
	require.NoError(t, err)
	assert.Nil(t, cost)
}
