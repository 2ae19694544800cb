// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the recognition service:
// - Recognition pipeline outcomes and stage latency
// - Nearby-landmark cache efficiency
// - External collaborator failures (location, embedding, enrichment)
// - API endpoint latency and throughput

var (
	// Recognition Pipeline Metrics
	RecognitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recognition_attempts_total",
			Help: "Total number of recognition attempts by outcome",
		},
		[]string{"outcome"}, // "success", "no_match", "low_confidence", "not_found", "error"
	)

	RecognitionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recognition_duration_seconds",
			Help:    "End-to-end recognition duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecognitionStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recognition_stage_duration_seconds",
			Help:    "Duration of individual recognition stages in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"stage"}, // "gps", "visual", "enrichment"
	)

	RecognitionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recognition_confidence",
			Help:    "Fused confidence score of recognition attempts",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.3},
		},
	)

	AgreementBonusTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recognition_agreement_bonus_total",
			Help: "Total number of attempts where GPS and visual matches agreed",
		},
	)

	// Nearby-Landmark Cache Metrics
	NearbyCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nearby_cache_hits_total",
			Help: "Total number of nearby-landmark cache hits (fresh entry reused)",
		},
	)

	NearbyCacheRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nearby_cache_refreshes_total",
			Help: "Total number of nearby-landmark cache refreshes against the provider",
		},
	)

	NearbyCacheExpansions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nearby_cache_radius_expansions_total",
			Help: "Total number of refreshes that fell back to the expanded radius",
		},
	)

	NearbyCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nearby_cache_entries",
			Help: "Number of landmarks in the nearby cache after the last refresh",
		},
	)

	// Collaborator Failure Metrics
	ProviderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_failures_total",
			Help: "Total number of external collaborator failures absorbed by the pipeline",
		},
		[]string{"provider"}, // "location", "landmark", "embedding", "enrichment", "prefs"
	)

	EnrichmentFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_fallbacks_total",
			Help: "Total number of descriptions served from a fallback source",
		},
		[]string{"source"}, // "raw_info", "template"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Asset Metrics
	LandmarksLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "landmarks_loaded",
			Help: "Number of landmark records loaded from the dataset",
		},
	)

	PrototypesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prototype_vectors_loaded",
			Help: "Number of prototype embedding vectors loaded",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordRecognition records one completed recognition attempt.
func RecordRecognition(outcome string, confidence float64, bonus bool, duration time.Duration) {
	RecognitionsTotal.WithLabelValues(outcome).Inc()
	RecognitionDuration.Observe(duration.Seconds())
	RecognitionConfidence.Observe(confidence)
	if bonus {
		AgreementBonusTotal.Inc()
	}
}

// RecordStage records the duration of one pipeline stage.
func RecordStage(stage string, duration time.Duration) {
	RecognitionStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordCacheRefresh records a provider-backed cache refresh.
func RecordCacheRefresh(expanded bool, entries int) {
	NearbyCacheRefreshes.Inc()
	if expanded {
		NearbyCacheExpansions.Inc()
	}
	NearbyCacheSize.Set(float64(entries))
}

// RecordProviderFailure records an absorbed collaborator failure.
func RecordProviderFailure(provider string) {
	ProviderFailures.WithLabelValues(provider).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
