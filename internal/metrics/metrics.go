// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the recommendation pipeline:
// - Recommendation throughput, latency, and errors
// - Response cache efficiency
// - Candidate scoring and filtering volumes
// - Catalog source circuit breaker and rate limiter
// - Pattern refresh runs

var (
	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation responses served",
		},
		[]string{"mood", "path"}, // path: "standard" or "cold_start"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}, // In-memory scoring is fast
		},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"stage"}, // "config", "candidates", "pattern", "recent_plays", "scoring"
	)

	// Response Cache Metrics
	ResponseCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_hits_total",
			Help: "Total number of responses served from the cache",
		},
	)

	ResponseCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_misses_total",
			Help: "Total number of requests that required full computation",
		},
	)

	ResponseCacheSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_swept_total",
			Help: "Total number of expired responses removed by sweeps",
		},
	)

	// Scoring Metrics
	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidates_scored_total",
			Help: "Total number of candidate tracks scored",
		},
	)

	CandidatesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidates_skipped_total",
			Help: "Total number of candidates skipped for missing audio descriptors",
		},
	)

	TracksFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracks_filtered_total",
			Help: "Total number of tracks dropped by rerankers",
		},
	)

	// Catalog Source Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures seen by a circuit breaker",
		},
		[]string{"name"},
	)

	SourceRateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_rate_limited_total",
			Help: "Total number of source calls delayed by the rate limiter",
		},
		[]string{"name"},
	)

	// Pattern Refresh Metrics
	RefreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_runs_total",
			Help: "Total number of pattern refresh runs",
		},
		[]string{"result"}, // "success" or "error"
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "refresh_duration_seconds",
			Help:    "Duration of pattern refresh runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	PatternsRefreshed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "patterns_refreshed_total",
			Help: "Total number of user patterns recomputed",
		},
	)

	RefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "refresh_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful refresh run",
		},
	)
)

// RecordRecommendation records a served recommendation response.
func RecordRecommendation(mood string, coldStart bool, seconds float64) {
	path := "standard"
	if coldStart {
		path = "cold_start"
	}
	RecommendationsTotal.WithLabelValues(mood, path).Inc()
	RecommendationDuration.Observe(seconds)
}

// RecordError records a failed recommendation request by pipeline stage.
func RecordError(stage string) {
	RecommendationErrors.WithLabelValues(stage).Inc()
}

// RecordCacheHit records a response served from the cache.
func RecordCacheHit() {
	ResponseCacheHits.Inc()
}

// RecordCacheMiss records a request that required full computation.
func RecordCacheMiss() {
	ResponseCacheMisses.Inc()
}

// AddCandidatesScored adds to the scored candidate counter.
func AddCandidatesScored(n int) {
	if n > 0 {
		CandidatesScored.Add(float64(n))
	}
}

// AddCandidatesSkipped adds to the skipped candidate counter.
func AddCandidatesSkipped(n int) {
	if n > 0 {
		CandidatesSkipped.Add(float64(n))
	}
}

// AddTracksFiltered adds to the reranker drop counter.
func AddTracksFiltered(n int) {
	if n > 0 {
		TracksFiltered.Add(float64(n))
	}
}

// AddResponsesSwept adds to the cache sweep counter.
func AddResponsesSwept(n int) {
	if n > 0 {
		ResponseCacheSwept.Add(float64(n))
	}
}

// RecordRefreshRun records a pattern refresh run.
func RecordRefreshRun(duration time.Duration, patterns int, err error) {
	RefreshDuration.Observe(duration.Seconds())
	if err != nil {
		RefreshRuns.WithLabelValues("error").Inc()
		return
	}
	RefreshRuns.WithLabelValues("success").Inc()
	PatternsRefreshed.Add(float64(patterns))
	RefreshLastSuccess.Set(float64(time.Now().Unix()))
}
