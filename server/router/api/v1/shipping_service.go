package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type shippingCostResponse struct {
	Price float64 `json:"price"`
}

// handleGetShippingCost returns the flat shipping price for a postal code.
func (s *APIV1Service) handleGetShippingCost(c echo.Context) error {
	postalCode := c.Param("cp")

	cost, err := s.Store.GetShippingCost(c.Request().Context(), postalCode)
	if err != nil {
		slog.Error("failed to get shipping cost", "postal_code", postalCode, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error interno del servidor"})
	}
	if cost == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Postal code not found"})
	}
	return c.JSON(http.StatusOK, shippingCostResponse{Price: cost.Price})
}
