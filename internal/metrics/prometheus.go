package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the ingestion worker

var (
	// API call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nba_api_calls_total",
			Help: "Total number of stats API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nba_api_call_duration_seconds",
			Help:    "Duration of stats API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Database metrics
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nba_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "table", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nba_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nba_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nba_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// Ingest metrics
	GamesIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nba_games_ingested_total",
			Help: "Total number of games ingested",
		},
		[]string{"status"},
	)

	IngestRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nba_ingest_run_duration_seconds",
			Help:    "Duration of full ingest runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 300, 900, 3600},
		},
	)

	GamesInStore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nba_games_in_store",
			Help: "Number of games in the database",
		},
	)

	PlayByPlayRowsInStore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nba_play_by_play_rows_in_store",
			Help: "Number of play-by-play rows in the database",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nba_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nba_system_uptime_seconds",
			Help: "Worker uptime in seconds",
		},
	)

	LastSuccessfulIngest = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nba_last_successful_ingest_timestamp",
			Help: "Timestamp of last successful ingest run",
		},
	)
)

// RecordAPICall records an API call metric
func RecordAPICall(endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table, status string, duration float64) {
	DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration)
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordGameIngested records one ingested (or skipped/failed) game
func RecordGameIngested(status string) {
	GamesIngestedTotal.WithLabelValues(status).Inc()
}

// RecordIngestRun records a completed ingest run
func RecordIngestRun(duration float64, ok bool) {
	IngestRunDuration.Observe(duration)
	if ok {
		LastSuccessfulIngest.SetToCurrentTime()
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// UpdateStoreStats updates store row-count gauges
func UpdateStoreStats(games, pbpRows int64) {
	GamesInStore.Set(float64(games))
	PlayByPlayRowsInStore.Set(float64(pbpRows))
}
