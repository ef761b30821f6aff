// Package server wires the echo HTTP server for the storefront.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/ai/rag"
	"github.com/gabrieloporto/nexoshop/internal/profile"
	"github.com/gabrieloporto/nexoshop/server/metrics"
	apiv1 "github.com/gabrieloporto/nexoshop/server/router/api/v1"
	"github.com/gabrieloporto/nexoshop/store"
)

// Server is the storefront HTTP server.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	metrics    *metrics.Metrics
	apiService *apiv1.APIV1Service
}

// NewServer creates the HTTP server. Retriever and generator are nil when AI
// is not configured; the chat and semantic search endpoints then answer 503
// while the catalog API keeps working.
func NewServer(_ context.Context, profile *profile.Profile, store *store.Store, retriever *rag.Retriever, generator *rag.Generator) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	m := metrics.New()

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger(m))

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
		metrics:    m,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	apiService := apiv1.NewAPIV1Service(profile, store)
	apiService.Metrics = m
	if retriever != nil {
		apiService.Retriever = retriever
	}
	if generator != nil {
		apiService.Generator = generator
	}
	apiService.RegisterRoutes(e)
	s.apiService = apiService

	return s, nil
}

// ReportSyncMetrics publishes the result of an index sync run to the sync
// gauges on /metrics.
func (s *Server) ReportSyncMetrics(report *rag.SyncReport, indexRecords int64) {
	s.metrics.ReportSync(report.Embedded, report.Skipped, indexRecords)
}

// Start begins serving in a background goroutine. It returns immediately;
// startup failures other than a clean shutdown are logged.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "address", address, "mode", s.Profile.Mode, "version", s.Profile.Version)

	go func() {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
		}
	}()
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}

	slog.Info("server stopped")
}

// requestLogger emits one slog line per request and feeds the latency
// histogram.
func requestLogger(m *metrics.Metrics) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			m.ObserveRequest(v.URI, fmt.Sprintf("%d", v.Status), v.Latency.Seconds())
			if v.Error != nil {
				slog.Error("request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency", v.Latency,
					"error", v.Error,
				)
				return nil
			}
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	})
}
