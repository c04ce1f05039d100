// Package metrics provides Prometheus metrics for natal-chart.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChartsTotal counts chart requests by background mode and outcome.
	ChartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "natalchart",
			Name:      "charts_total",
			Help:      "Total number of chart generation requests",
		},
		[]string{"mode", "status"},
	)

	// DecorationFallbackTotal counts charts returned undecorated.
	DecorationFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "natalchart",
			Name:      "decoration_fallback_total",
			Help:      "Total number of charts returned without decoration",
		},
		[]string{"reason"},
	)

	// RenderDuration measures base chart rendering time.
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "natalchart",
			Name:      "render_duration_seconds",
			Help:      "Duration of base chart rendering in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"renderer", "status"},
	)

	// CatalogLoadTotal counts background catalog reads from disk.
	CatalogLoadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "natalchart",
			Name:      "catalog_load_total",
			Help:      "Total number of background catalog loads",
		},
		[]string{"status"},
	)
)

// RecordChart records a chart request outcome.
func RecordChart(mode, status string) {
	ChartsTotal.WithLabelValues(mode, status).Inc()
}

// RecordDecorationFallback records a chart served undecorated.
func RecordDecorationFallback(reason string) {
	DecorationFallbackTotal.WithLabelValues(reason).Inc()
}

// RecordRender records a base chart render.
func RecordRender(renderer, status string, seconds float64) {
	RenderDuration.WithLabelValues(renderer, status).Observe(seconds)
}

// RecordCatalogLoad records a catalog read.
func RecordCatalogLoad(status string) {
	CatalogLoadTotal.WithLabelValues(status).Inc()
}
