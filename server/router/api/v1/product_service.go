package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gabrieloporto/nexoshop/store"
)

// handleListProducts returns the catalog, optionally filtered by category.
func (s *APIV1Service) handleListProducts(c echo.Context) error {
	find := &store.FindProduct{}
	if category := c.QueryParam("category"); category != "" {
		find.Category = &category
	}

	products, err := s.Store.ListProducts(c.Request().Context(), find)
	if err != nil {
		slog.Error("failed to list products", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "Error interno del servidor",
		})
	}
	return c.JSON(http.StatusOK, products)
}

func (s *APIV1Service) handleGetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid product ID"})
	}

	product, err := s.Store.GetProduct(c.Request().Context(), int32(id))
	if err != nil {
		slog.Error("failed to get product", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "Error interno del servidor",
		})
	}
	if product == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Product not found"})
	}
	return c.JSON(http.StatusOK, product)
}

// handleSearchProducts is the keyword (ILIKE) search. Queries shorter than
// two characters return an empty list rather than an error.
func (s *APIV1Service) handleSearchProducts(c echo.Context) error {
	query := c.QueryParam("q")
	if len(query) < 2 {
		return c.JSON(http.StatusOK, []*store.Product{})
	}

	products, err := s.Store.SearchProducts(c.Request().Context(), query, 20)
	if err != nil {
		slog.Error("failed to search products", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "Error interno del servidor",
		})
	}
	return c.JSON(http.StatusOK, products)
}
