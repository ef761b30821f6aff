// Package metrics provides Prometheus metrics for the storefront server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	chatRequests    *prometheus.CounterVec
	searchRequests  *prometheus.CounterVec
	retrievedCount  prometheus.Histogram

	syncEmbedded prometheus.Gauge
	syncSkipped  prometheus.Gauge
	indexRecords prometheus.Gauge
}

// New creates a metrics set on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nexoshop",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"route", "status"},
		),
		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nexoshop",
				Name:      "chat_requests_total",
				Help:      "Total chat turns by outcome",
			},
			[]string{"status"},
		),
		searchRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nexoshop",
				Name:      "semantic_search_requests_total",
				Help:      "Total semantic search requests by outcome",
			},
			[]string{"status"},
		),
		retrievedCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "nexoshop",
				Name:      "chat_retrieved_products",
				Help:      "Products retrieved per chat turn",
				Buckets:   []float64{0, 1, 2, 3, 4, 5},
			},
		),
		syncEmbedded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nexoshop",
			Name:      "sync_embedded_products",
			Help:      "Products embedded during the last index sync",
		}),
		syncSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nexoshop",
			Name:      "sync_skipped_products",
			Help:      "Products skipped during the last index sync",
		}),
		indexRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nexoshop",
			Name:      "vector_index_records",
			Help:      "Records in the product vector index",
		}),
	}

	registry.MustRegister(
		m.requestDuration,
		m.chatRequests,
		m.searchRequests,
		m.retrievedCount,
		m.syncEmbedded,
		m.syncSkipped,
		m.indexRecords,
	)
	return m
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	m.requestDuration.WithLabelValues(route, status).Observe(seconds)
}

// CountChat records one chat turn outcome ("ok" or "error").
func (m *Metrics) CountChat(status string, retrieved int) {
	m.chatRequests.WithLabelValues(status).Inc()
	if status == "ok" {
		m.retrievedCount.Observe(float64(retrieved))
	}
}

// CountSearch records one semantic search outcome.
func (m *Metrics) CountSearch(status string) {
	m.searchRequests.WithLabelValues(status).Inc()
}

// ReportSync records the result of an index sync run.
func (m *Metrics) ReportSync(embedded, skipped int, indexRecords int64) {
	m.syncEmbedded.Set(float64(embedded))
	m.syncSkipped.Set(float64(skipped))
	m.indexRecords.Set(float64(indexRecords))
}
