package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counters for the resolution pipeline, kept on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Resolutions       *prometheus.CounterVec
	FallbackErrors    *prometheus.CounterVec
	ResolutionSeconds prometheus.Histogram
	CatalogProducts   prometheus.Gauge
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_assistant_resolutions_total",
				Help: "Resolved queries by the tier that produced the reply",
			},
			[]string{"tier"},
		),
		FallbackErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_assistant_fallback_errors_total",
				Help: "Failed assistant calls by error kind",
			},
			[]string{"kind"},
		),
		ResolutionSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "store_assistant_resolution_duration_seconds",
				Help:    "Time to resolve one query",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		CatalogProducts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "store_assistant_catalog_products",
				Help: "Products in the loaded catalog",
			},
		),
	}

	m.registry.MustRegister(m.Resolutions, m.FallbackErrors, m.ResolutionSeconds, m.CatalogProducts)
	return m
}

// ObserveResolution records one finished query. Safe on a nil receiver.
func (m *Metrics) ObserveResolution(tier string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(tier).Inc()
	m.ResolutionSeconds.Observe(elapsed.Seconds())
}

// ObserveFallbackError counts a failed assistant call. Safe on a nil receiver.
func (m *Metrics) ObserveFallbackError(kind string) {
	if m == nil {
		return
	}
	m.FallbackErrors.WithLabelValues(kind).Inc()
}

// SetCatalogSize records the number of loaded products. Safe on a nil receiver.
func (m *Metrics) SetCatalogSize(n int) {
	if m == nil {
		return
	}
	m.CatalogProducts.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
