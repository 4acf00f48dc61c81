// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

/*
Package metrics provides Prometheus instrumentation for the
recommendation pipeline.

# Overview

The package provides metrics for:
  - Recommendation throughput, latency, and per-stage errors
  - Response cache hit/miss rates and sweep volume
  - Candidate scoring, skipping, and reranker filtering
  - Catalog source circuit breaker state and rate limiting
  - Pattern refresh run outcomes

# Available Metrics

Recommendation Metrics:
  - recommendations_total: Responses served (counter)
    Labels: mood, path (standard, cold_start)
  - recommendation_duration_seconds: Request latency (histogram)
  - recommendation_errors_total: Failed requests (counter)
    Labels: stage (config, candidates, pattern, recent_plays, scoring)

Cache Metrics:
  - response_cache_hits_total: Responses served from cache (counter)
  - response_cache_misses_total: Full computations (counter)
  - response_cache_swept_total: Expired entries removed (counter)

Scoring Metrics:
  - candidates_scored_total: Candidates scored (counter)
  - candidates_skipped_total: Candidates without descriptors (counter)
  - tracks_filtered_total: Tracks dropped by rerankers (counter)

Source Metrics:
  - circuit_breaker_state: Breaker state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through breakers (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_transitions_total: State transitions (counter)
    Labels: name, from, to
  - circuit_breaker_consecutive_failures: Consecutive failures seen (gauge)
    Labels: name
  - source_rate_limited_total: Calls delayed by the limiter (counter)
    Labels: name

Refresh Metrics:
  - refresh_runs_total: Pattern refresh runs (counter)
    Labels: result (success, error)
  - refresh_duration_seconds: Refresh run duration (histogram)
  - patterns_refreshed_total: User patterns recomputed (counter)
  - refresh_last_success_timestamp_seconds: Last successful run (gauge)

# Usage Example

Recording from the engine:

	start := time.Now()
	resp, err := compute(req)
	if err != nil {
	    metrics.RecordError("scoring")
	    return nil, err
	}
	metrics.RecordRecommendation(resp.Metadata.Mood, resp.Metadata.ColdStart, time.Since(start).Seconds())

Example PromQL queries:

	# Recommendation rate by mood
	sum by (mood) (rate(recommendations_total[5m]))

	# p95 recommendation latency
	histogram_quantile(0.95, rate(recommendation_duration_seconds_bucket[5m]))

	# Cache hit rate
	rate(response_cache_hits_total[5m])
	/ (rate(response_cache_hits_total[5m]) + rate(response_cache_misses_total[5m]))

	# Cold start share
	sum(rate(recommendations_total{path="cold_start"}[5m]))
	/ sum(rate(recommendations_total[5m]))

# Cardinality

Mood is the only free-form label and is bounded by the profile
registry plus the neutral fallback, so every series count stays small.
User and track identifiers never appear as labels.

# Thread Safety

All collectors and helper functions are safe for concurrent use. The
Prometheus client library handles synchronization internally.
*/
package metrics
