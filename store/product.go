package store

import (
	"fmt"
	"math"
	"strconv"
)

// Product represents a catalog product. The relational catalog owns this
// record; the vector index holds a denormalized metadata copy that converges
// to it after a sync run.
type Product struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category"`
	Stock       int32   `json:"stock"`
}

// InStock reports whether the product has available stock.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// FindProduct is the find condition for products.
type FindProduct struct {
	ID       *int32
	Category *string
}

// FormatPrice renders a price in the storefront's display format: whole
// pesos, thousands separated with dots ("$ 1.500").
func FormatPrice(price float64) string {
	rounded := int64(math.Round(price))
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := strconv.FormatInt(rounded, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	if negative {
		return fmt.Sprintf("$ -%s", grouped)
	}
	return fmt.Sprintf("$ %s", grouped)
}
