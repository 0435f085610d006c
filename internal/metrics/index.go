package metrics

import "github.com/prometheus/client_golang/prometheus"

// Index engine Prometheus metrics.
var (
	DocumentsIndexed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assetdex",
			Name:      "documents_indexed_total",
			Help:      "Total number of documents indexed",
		},
	)

	DocumentsRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assetdex",
			Name:      "documents_removed_total",
			Help:      "Total number of documents removed from the index",
		},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assetdex",
			Name:      "searches_total",
			Help:      "Total number of search requests",
		},
		[]string{"mode"}, // "text" / "visual" / "similar" / "hybrid"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assetdex",
			Name:      "search_duration_seconds",
			Help:      "Search request duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"mode"},
	)
)

var indexMetricsRegistered bool

// RegisterIndexMetrics registers the index engine metrics. Must be called
// once from main.
func RegisterIndexMetrics() {
	if indexMetricsRegistered {
		return
	}
	prometheus.MustRegister(DocumentsIndexed)
	prometheus.MustRegister(DocumentsRemoved)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	indexMetricsRegistered = true
}
