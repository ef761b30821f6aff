package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gabrieloporto/nexoshop/ai/rag"
)

const (
	defaultSearchLimit    = 10
	defaultSearchMinScore = 0.7
)

type semanticSearchRequest struct {
	Query    string   `json:"query"`
	Limit    int      `json:"limit"`
	MinScore *float32 `json:"minScore"`
}

type semanticSearchResponse struct {
	Results []rag.Match `json:"results"`
	Query   string      `json:"query"`
	Count   int         `json:"count"`
}

// handleSemanticSearch ranks the whole catalog against the query, without
// the stock filter the chat pipeline applies.
func (s *APIV1Service) handleSemanticSearch(c echo.Context) error {
	if s.Retriever == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{
			Error: "La búsqueda semántica no está disponible",
		})
	}

	request := &semanticSearchRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "El query es requerido y debe ser un string",
		})
	}
	if request.Query == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "El query es requerido y debe ser un string",
		})
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	minScore := float32(defaultSearchMinScore)
	if request.MinScore != nil {
		minScore = *request.MinScore
	}

	matches, err := s.Retriever.Retrieve(c.Request().Context(), request.Query, rag.RetrieveOptions{
		TopK:     limit,
		MinScore: minScore,
	})
	if err != nil {
		slog.Error("semantic search failed", "error", err)
		s.countSearch("error")
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "Error en la búsqueda",
			Details: "retrieval failed",
		})
	}

	s.countSearch("ok")
	return c.JSON(http.StatusOK, semanticSearchResponse{
		Results: matches,
		Query:   request.Query,
		Count:   len(matches),
	})
}

func (s *APIV1Service) countSearch(status string) {
	if s.Metrics != nil {
		s.Metrics.CountSearch(status)
	}
}
