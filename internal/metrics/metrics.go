// Package metrics provides the centralized Prometheus metrics registry for
// the lap time estimation service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EstimationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autorev_laptime",
		Name:      "estimations_total",
		Help:      "Total number of lap time estimations by tier",
	}, []string{"tier"})
	SimilarCarLookupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "autorev_laptime",
		Name:      "similar_car_lookups_total",
		Help:      "Total number of similar-car interpolation lookups",
	})
	TrackStatsBuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "autorev_laptime",
		Name:      "track_stats_builds_total",
		Help:      "Total number of track stats summaries computed from raw records",
	})
	CachePrewarmsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "autorev_laptime",
		Name:      "cache_prewarms_total",
		Help:      "Total number of scheduled track stats prewarm runs",
	})
)

// Gauge metrics
var (
	TrackStatsCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "autorev_laptime",
		Name:      "track_stats_cache_hit_ratio",
		Help:      "Hit ratio of the in-process track stats cache",
	})
	TrackStatsCacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "autorev_laptime",
		Name:      "track_stats_cache_size",
		Help:      "Number of entries in the track stats cache",
	})
)

// Histogram metrics
var (
	EstimationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "autorev_laptime",
		Name:      "estimation_duration_seconds",
		Help:      "Duration of estimation calls in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	DBQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "autorev_laptime",
		Name:      "db_query_duration_seconds",
		Help:      "Duration of database queries in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(EstimationsTotal)
		registry.MustRegister(SimilarCarLookupsTotal)
		registry.MustRegister(TrackStatsBuildsTotal)
		registry.MustRegister(CachePrewarmsTotal)

		registry.MustRegister(TrackStatsCacheHitRatio)
		registry.MustRegister(TrackStatsCacheSize)

		registry.MustRegister(EstimationDuration)
		registry.MustRegister(DBQueryDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEstimation records an estimation event with its selected tier.
func RecordEstimation(tier string, durationSeconds float64) {
	EstimationsTotal.WithLabelValues(tier).Inc()
	EstimationDuration.Observe(durationSeconds)
}

// RecordSimilarCarLookup records a similar-car lookup event.
func RecordSimilarCarLookup() {
	SimilarCarLookupsTotal.Inc()
}

// RecordTrackStatsBuild records a track stats computation.
func RecordTrackStatsBuild() {
	TrackStatsBuildsTotal.Inc()
}

// RecordCachePrewarm records a scheduled prewarm run.
func RecordCachePrewarm() {
	CachePrewarmsTotal.Inc()
}

// ObserveDBQuery records the duration of a named database query.
func ObserveDBQuery(query string, durationSeconds float64) {
	DBQueryDuration.WithLabelValues(query).Observe(durationSeconds)
}

// UpdateCacheHitRatio updates the track stats cache hit ratio gauge.
func UpdateCacheHitRatio(ratio float64) {
	TrackStatsCacheHitRatio.Set(ratio)
}

// UpdateCacheSize updates the track stats cache size gauge.
func UpdateCacheSize(count float64) {
	TrackStatsCacheSize.Set(count)
}
