// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search requests by strategy",
		},
		[]string{"strategy"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "search_duration_seconds",
			Help: "Duration of one search orchestration pass in seconds",
		},
		[]string{"strategy"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_lookups_total",
			Help: "Total number of query cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_provider_calls_total",
			Help: "Total number of external provider calls by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	LocalStoreQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "local_store_queries_total",
			Help: "Total number of local store queries by status",
		},
		[]string{"status"},
	)
)
