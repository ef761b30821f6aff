package store

// OrderItem is a single line of an order, denormalized at purchase time so
// later catalog edits don't rewrite order history.
type OrderItem struct {
	ProductID int32   `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int32   `json:"quantity"`
	Total     float64 `json:"total"`
}

// Order represents a persisted customer order.
type Order struct {
	ID                 int32       `json:"id"`
	CustomerEmail      string      `json:"customerEmail"`
	CustomerName       string      `json:"customerName"`
	CustomerPhone      string      `json:"customerPhone"`
	ShippingAddress    string      `json:"shippingAddress"`
	ShippingCity       string      `json:"shippingCity"`
	ShippingProvince   string      `json:"shippingProvince"`
	ShippingPostalCode string      `json:"shippingPostalCode,omitempty"`
	ShippingMethod     string      `json:"shippingMethod"`
	ShippingPrice      float64     `json:"shippingPrice"`
	Subtotal           float64     `json:"subtotal"`
	Total              float64     `json:"total"`
	Status             string      `json:"status"`
	CreatedTs          int64       `json:"createdTs"`
	Items              []OrderItem `json:"items"`
}

// FindOrder is the find condition for orders.
type FindOrder struct {
	ID            *int32
	CustomerEmail *string
}

// ShippingCost maps a postal code to its flat shipping price.
type ShippingCost struct {
	PostalCode string  `json:"postalCode"`
	Price      float64 `json:"price"`
}
