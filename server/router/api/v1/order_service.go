package v1

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gabrieloporto/nexoshop/store"
)

type createOrderRequest struct {
	Email          string  `json:"email"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Province       string  `json:"province"`
	PostalCode     string  `json:"postalCode"`
	ShippingMethod string  `json:"shippingMethod"`
	ShippingPrice  float64 `json:"shippingPrice"`
	Subtotal       float64 `json:"subtotal"`
	Total          float64 `json:"total"`
	Items          []struct {
		Product struct {
			ID    int32   `json:"id"`
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		} `json:"product"`
		Quantity int32 `json:"quantity"`
	} `json:"items"`
}

// handleCreateOrder persists a new order with status "pending".
func (s *APIV1Service) handleCreateOrder(c echo.Context) error {
	request := &createOrderRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid order payload"})
	}
	if request.Email == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email is required"})
	}

	items := make([]store.OrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, store.OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			Total:     item.Product.Price * float64(item.Quantity),
		})
	}

	order, err := s.Store.CreateOrder(c.Request().Context(), &store.Order{
		CustomerEmail:      request.Email,
		CustomerName:       request.FirstName + " " + request.LastName,
		CustomerPhone:      request.Phone,
		ShippingAddress:    request.Address,
		ShippingCity:       request.City,
		ShippingProvince:   request.Province,
		ShippingPostalCode: request.PostalCode,
		ShippingMethod:     request.ShippingMethod,
		ShippingPrice:      request.ShippingPrice,
		Subtotal:           request.Subtotal,
		Total:              request.Total,
		Status:             "pending",
		CreatedTs:          time.Now().Unix(),
		Items:              items,
	})
	if err != nil {
		slog.Error("failed to create order", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error creating order"})
	}
	return c.JSON(http.StatusOK, order)
}

// handleGetOrder returns a single order by ID.
func (s *APIV1Service) handleGetOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid order ID"})
	}

	order, err := s.Store.GetOrder(c.Request().Context(), int32(id))
	if err != nil {
		slog.Error("failed to get order", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error fetching order"})
	}
	if order == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Order not found"})
	}
	return c.JSON(http.StatusOK, order)
}

// handleListOrders returns the orders of one customer, oldest first.
func (s *APIV1Service) handleListOrders(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email is required"})
	}

	orders, err := s.Store.ListOrders(c.Request().Context(), &store.FindOrder{CustomerEmail: &email})
	if err != nil {
		slog.Error("failed to list orders", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error fetching orders"})
	}
	return c.JSON(http.StatusOK, orders)
}

type checkoutItem struct {
	ProductID int32 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type checkoutRequest struct {
	Items      []checkoutItem `json:"items"`
	PostalCode string         `json:"postalCode"`
}

type checkoutResponse struct {
	Items    []store.OrderItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Shipping float64           `json:"shipping"`
	Total    float64           `json:"total"`
}

// handleCheckout prices a cart: current catalog prices, flat shipping by
// postal code. Nothing is persisted here.
func (s *APIV1Service) handleCheckout(c echo.Context) error {
	request := &checkoutRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing items or postal code"})
	}
	if len(request.Items) == 0 || request.PostalCode == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing items or postal code"})
	}

	ctx := c.Request().Context()

	shippingCost, err := s.Store.GetShippingCost(ctx, request.PostalCode)
	if err != nil {
		slog.Error("failed to get shipping cost", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error interno del servidor"})
	}
	if shippingCost == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Invalid postal code"})
	}

	items := make([]store.OrderItem, 0, len(request.Items))
	subtotal := 0.0
	for _, item := range request.Items {
		product, err := s.Store.GetProduct(ctx, item.ProductID)
		if err != nil {
			slog.Error("failed to get product", "id", item.ProductID, "error", err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error interno del servidor"})
		}
		if product == nil {
			continue
		}

		total := product.Price * float64(item.Quantity)
		items = append(items, store.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			Total:     total,
		})
		subtotal += total
	}

	return c.JSON(http.StatusOK, checkoutResponse{
		Items:    items,
		Subtotal: subtotal,
		Shipping: shippingCost.Price,
		Total:    subtotal + shippingCost.Price,
	})
}
