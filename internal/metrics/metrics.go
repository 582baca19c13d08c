package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ── HTTP request metrics (RED method) ──────────────────────────────────

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spro_fees",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "spro_fees",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "spro_fees",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being processed.",
	})
)

// ── Subgraph query metrics ─────────────────────────────────────────────

var (
	SubgraphQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spro_fees",
		Subsystem: "subgraph",
		Name:      "queries_total",
		Help:      "Total number of subgraph queries per query name.",
	}, []string{"query", "status"})

	SubgraphQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "spro_fees",
		Subsystem: "subgraph",
		Name:      "query_duration_seconds",
		Help:      "Duration of subgraph queries in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"query"})
)

// ── Adapter metrics ────────────────────────────────────────────────────

var (
	AdapterRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spro_fees",
		Subsystem: "adapter",
		Name:      "runs_total",
		Help:      "Total adapter fetch runs per adapter and chain.",
	}, []string{"adapter", "chain", "status"})

	AdapterRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "spro_fees",
		Subsystem: "adapter",
		Name:      "run_duration_seconds",
		Help:      "Duration of adapter fetch runs in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"adapter", "chain"})

	FetchFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spro_fees",
		Subsystem: "adapter",
		Name:      "fetch_fallbacks_total",
		Help:      "Fetches that degraded to an all-zero result after a query failure.",
	}, []string{"chain"})

	TokensReported = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "spro_fees",
		Subsystem: "business",
		Name:      "tokens_reported",
		Help:      "Number of fee tokens in the latest result per adapter and chain.",
	}, []string{"adapter", "chain"})
)
