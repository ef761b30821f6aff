package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gabrieloporto/nexoshop/ai"
	"github.com/gabrieloporto/nexoshop/ai/rag"
	"github.com/gabrieloporto/nexoshop/ai/vector"
	"github.com/gabrieloporto/nexoshop/store"
)

// chatTopK is how many products ground each chat answer.
const chatTopK = 5

type chatRequest struct {
	Message             string       `json:"message"`
	ConversationHistory []ai.Message `json:"conversationHistory"`
}

type chatResponse struct {
	Message   string           `json:"message"`
	Products  []*store.Product `json:"products"`
	Timestamp string           `json:"timestamp"`
}

// handleChat runs one RAG turn: embed the message, retrieve in-stock
// products, generate a grounded answer.
func (s *APIV1Service) handleChat(c echo.Context) error {
	if s.Retriever == nil || s.Generator == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{
			Error: "El asistente no está disponible",
		})
	}

	request := &chatRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "El mensaje es requerido y debe ser un string",
		})
	}
	if request.Message == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "El mensaje es requerido y debe ser un string",
		})
	}

	ctx := c.Request().Context()

	matches, err := s.Retriever.Retrieve(ctx, request.Message, rag.RetrieveOptions{
		TopK:   chatTopK,
		Filter: vector.InStockOnly(),
	})
	if err != nil {
		// The raw provider error goes to the log only; the response carries
		// a stable classification.
		slog.Error("chat retrieval failed", "error", err)
		s.countChat("error", 0)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "Error al procesar la consulta",
			Details: "retrieval failed",
		})
	}

	products := rag.Products(matches)
	answer, err := s.Generator.Generate(ctx, request.Message, products, sanitizeHistory(request.ConversationHistory))
	if err != nil {
		slog.Error("chat generation failed", "error", err)
		s.countChat("error", 0)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "Error al procesar la consulta",
			Details: "generation failed",
		})
	}

	s.countChat("ok", len(products))
	return c.JSON(http.StatusOK, chatResponse{
		Message:   answer,
		Products:  products,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// sanitizeHistory keeps only user and assistant turns. The history comes
// from the client, so any other role (notably "system") is dropped rather
// than forwarded to the model.
func sanitizeHistory(history []ai.Message) []ai.Message {
	sanitized := make([]ai.Message, 0, len(history))
	for _, message := range history {
		if message.Role != "user" && message.Role != "assistant" {
			continue
		}
		sanitized = append(sanitized, message)
	}
	return sanitized
}

func (s *APIV1Service) countChat(status string, retrieved int) {
	if s.Metrics != nil {
		s.Metrics.CountChat(status, retrieved)
	}
}
