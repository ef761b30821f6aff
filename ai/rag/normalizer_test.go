package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabrieloporto/nexoshop/store"
)

func TestProductTextIncludesAllFields(t *testing.T) {
	p := &store.Product{
		ID:          1,
		Name:        "Zapatillas Running Pro",
		Description: "Zapatillas livianas para correr largas distancias",
		Price:       85999.50,
		Category:    "Calzado",
		Stock:       50,
	}

	text := ProductText(p)

	assert.Contains(t, text, "Producto: Zapatillas Running Pro")
	assert.Contains(t, text, "Descripción: Zapatillas livianas para correr largas distancias")
	assert.Contains(t, text, "Categoría: Calzado")
	assert.Contains(t, text, "Precio: $ 86.000")
	assert.Contains(t, text, "Disponible")
}

func TestProductTextOmitsMissingOptionalFields(t *testing.T) {
	p := &store.Product{
		ID:       2,
		Name:     "Mate Imperial",
		Price:    12000,
		Category: "Hogar",
		Stock:    0,
	}

	text := ProductText(p)

	assert.NotContains(t, text, "Descripción")
	assert.Contains(t, text, "Sin stock")
}

// Missing fields must be omitted, never replaced with placeholder tokens
// that would pollute the embedding.
func TestProductTextNeverContainsNullTokens(t *testing.T) {
	products := []*store.Product{
		{ID: 1, Name: "A", Price: 10, Category: "X", Stock: 1},
		{ID: 2, Name: "B", Description: "desc", Price: 0, Category: "", Stock: 0},
		{ID: 3},
	}

	for _, p := range products {
		text := ProductText(p)
		assert.NotContains(t, text, "null")
		assert.NotContains(t, text, "undefined")
		assert.NotContains(t, text, "<nil>")
	}
}

func TestProductTextIsDeterministic(t *testing.T) {
	p := &store.Product{ID: 1, Name: "Campera", Description: "Abrigo", Price: 50000, Category: "Ropa", Stock: 3}
	assert.Equal(t, ProductText(p), ProductText(p))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price    float64
		expected string
	}{
		{0, "$ 0"},
		{999, "$ 999"},
		{1500, "$ 1.500"},
		{85999.50, "$ 86.000"},
		{1234567, "$ 1.234.567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, store.FormatPrice(tt.price))
	}
}
