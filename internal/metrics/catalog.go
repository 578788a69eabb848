package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog and recommendation Prometheus metrics.
var (
	CatalogRowsKept = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filmrec",
			Name:      "catalog_rows_kept_total",
			Help:      "Movies kept by catalog ingestion",
		},
		[]string{"mode"}, // "normalize" / "restore"
	)

	CatalogRowsExcluded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filmrec",
			Name:      "catalog_rows_excluded_total",
			Help:      "Rows excluded by catalog ingestion",
		},
		[]string{"mode", "source", "reason"},
	)

	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "filmrec",
			Name:      "catalog_movies",
			Help:      "Number of movies in the loaded catalog",
		},
	)

	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "filmrec",
			Name:      "recommend_duration_seconds",
			Help:      "Time to rank the catalog for one reference movie",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RankCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filmrec",
			Name:      "rank_cache_total",
			Help:      "Ranking cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers catalog and recommendation metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogRowsKept)
	prometheus.MustRegister(CatalogRowsExcluded)
	prometheus.MustRegister(CatalogSize)
	prometheus.MustRegister(RecommendDuration)
	prometheus.MustRegister(RankCacheTotal)
	catalogMetricsRegistered = true
}
