// # internal/shared/observability/metrics.go
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sherlock_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	SymbolsExtractedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sherlock_symbols_extracted_total",
		Help: "Total number of symbols emitted by extraction.",
	}, []string{"language", "symbol_type"})

	ChunkHashesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sherlock_chunk_hashes_total",
		Help: "Total number of chunk hashes computed.",
	})

	ActiveParsers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sherlock_active_parsers",
		Help: "Number of tree-sitter parsers currently leased from the pool.",
	}, []string{"language"})

	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sherlock_requests_total",
		Help: "Total number of API requests by route and outcome.",
	}, []string{"route", "outcome"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sherlock_request_seconds",
		Help:    "Latency of API requests by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	FailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sherlock_failures_total",
		Help: "Total number of failed operations by error code.",
	}, []string{"operation", "code"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sherlock_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter.",
	})

	ConfigReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sherlock_config_reloads_total",
		Help: "Total number of configuration reload attempts by result.",
	}, []string{"result"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sherlock_watcher_events_total",
		Help: "Total number of file system events seen by the source watcher.",
	})
)
