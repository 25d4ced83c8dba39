// Package metrics exposes Prometheus metrics for the document store and
// its HTTP surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for devwatch.
type Metrics struct {
	MutationsTotal    *prometheus.CounterVec
	EventsFoldedTotal *prometheus.CounterVec
	RecomputesTotal   prometheus.Counter
	SecurityScore     prometheus.Gauge
	CollectionSize    *prometheus.GaugeVec

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with all metrics registered on its own
// registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		MutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devwatch_mutations_total",
				Help: "Total number of collection mutations",
			},
			[]string{"collection", "op"},
		),
		EventsFoldedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devwatch_events_folded_total",
				Help: "Total number of external feed events folded into the store",
			},
			[]string{"kind"},
		),
		RecomputesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "devwatch_dashboard_recomputes_total",
				Help: "Total number of dashboard recomputations",
			},
		),
		SecurityScore: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "devwatch_security_score",
				Help: "Current security score (0-100)",
			},
		),
		CollectionSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "devwatch_collection_size",
				Help: "Number of entities per collection",
			},
			[]string{"collection"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devwatch_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "devwatch_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.MutationsTotal,
		m.EventsFoldedTotal,
		m.RecomputesTotal,
		m.SecurityScore,
		m.CollectionSize,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler returns the HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
