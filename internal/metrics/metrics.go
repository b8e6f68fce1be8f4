package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangul_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hangul_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hangul_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})

	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangul_analyses_total",
		Help: "Texts analyzed by surface (web, bot, cli)",
	}, []string{"surface"})
)

// Translation metrics.
var (
	LLMTranslationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hangul_llm_translation_duration_seconds",
		Help:    "LLM translation call duration in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
	})

	TranslationCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangul_translation_cache_lookups_total",
		Help: "Translation cache lookups by result (hit, miss)",
	}, []string{"result"})
)

// Bot metrics.
var (
	BotCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangul_bot_commands_total",
		Help: "Slash commands handled by command and result",
	}, []string{"command", "result"})
)

// Retention worker metrics.
var (
	PruneCycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hangul_worker_prune_duration_seconds",
		Help:    "Duration of each retention prune cycle",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})

	RowsPruned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangul_worker_rows_pruned_total",
		Help: "Rows deleted by the retention worker by table",
	}, []string{"table"})

	LookupsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangul_lookups_stored",
		Help: "Number of lookups stored after the last prune cycle",
	})
)

// Database pool metrics (gauges updated periodically).
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangul_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangul_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangul_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})

	DBPoolMaxConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangul_db_pool_max_conns",
		Help: "Max connections configured for the pool",
	})
)
