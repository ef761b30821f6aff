// Package v1 implements the storefront JSON API.
package v1

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/gabrieloporto/nexoshop/ai"
	"github.com/gabrieloporto/nexoshop/ai/rag"
	"github.com/gabrieloporto/nexoshop/internal/profile"
	"github.com/gabrieloporto/nexoshop/server/metrics"
	"github.com/gabrieloporto/nexoshop/store"
)

// Retriever ranks catalog products against a free-text query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, opts rag.RetrieveOptions) ([]rag.Match, error)
}

// Generator produces the grounded assistant answer.
type Generator interface {
	Generate(ctx context.Context, query string, products []*store.Product, history []ai.Message) (string, error)
}

// APIV1Service carries the dependencies of the v1 handlers. Retriever and
// Generator are nil when AI is not configured; the CRUD endpoints keep
// working without them.
type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.Store
	Retriever Retriever
	Generator Generator
	Metrics   *metrics.Metrics

	limiterMu    sync.Mutex
	chatLimiters map[string]*rate.Limiter
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:      profile,
		Store:        store,
		chatLimiters: map[string]*rate.Limiter{},
	}
}

// errorResponse is the error body shape of every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RegisterRoutes attaches the v1 handlers to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	apiGroup := e.Group("/api")

	apiGroup.POST("/chat", s.handleChat, s.chatRateLimit)
	apiGroup.POST("/search/semantic", s.handleSemanticSearch)

	apiGroup.GET("/products", s.handleListProducts)
	apiGroup.GET("/products/search", s.handleSearchProducts)
	apiGroup.GET("/products/:id", s.handleGetProduct)

	apiGroup.POST("/orders", s.handleCreateOrder)
	apiGroup.GET("/orders", s.handleListOrders)
	apiGroup.GET("/orders/:id", s.handleGetOrder)
	apiGroup.POST("/checkout", s.handleCheckout)
	apiGroup.GET("/shipping-costs/:cp", s.handleGetShippingCost)
}

// chatRateLimit throttles chat turns per client IP. Generation calls are the
// expensive path, so the limit is deliberately low.
func (s *APIV1Service) chatRateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.limiterFor(c.RealIP()).Allow() {
			return c.JSON(http.StatusTooManyRequests, errorResponse{
				Error: "Demasiadas solicitudes, intenta nuevamente en unos segundos",
			})
		}
		return next(c)
	}
}

func (s *APIV1Service) limiterFor(ip string) *rate.Limiter {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()

	limiter, ok := s.chatLimiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(1), 5)
		s.chatLimiters[ip] = limiter
	}
	return limiter
}
