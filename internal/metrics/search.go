package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchVariantFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_variant_failures_total",
			Help:      "Query variants whose embedding or vector lookup failed",
		},
	)

	SearchResultCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_result_cache_total",
			Help:      "Search result cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end enhanced search duration in seconds (cache misses only)",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_candidates",
			Help:      "Unique candidates per search before gender filtering",
			Buckets:   prometheus.LinearBuckets(0, 8, 8),
		},
	)
)
