// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package source

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/euphonia/internal/metrics"
	"github.com/tomtom215/euphonia/internal/recommend"
)

// BreakerCatalog wraps a CatalogProvider with circuit breaker
// protection so a failing source cannot drag the recommendation path
// down with it.
type BreakerCatalog struct {
	inner  recommend.CatalogProvider
	cb     *gobreaker.CircuitBreaker[[]recommend.Track]
	logger zerolog.Logger
	name   string
}

// NewBreakerCatalog creates a protected catalog provider. The breaker
// opens once ten or more calls inside a one-minute window fail at a
// 60% rate, rejects calls for two minutes, then admits up to three
// probes before closing again. The name identifies the source in logs
// and metrics; empty defaults to "catalog".
func NewBreakerCatalog(inner recommend.CatalogProvider, name string, logger zerolog.Logger) *BreakerCatalog {
	if name == "" {
		name = "catalog"
	}
	log := logger.With().Str("component", "circuit_breaker").Str("source", name).Logger()

	cb := gobreaker.NewCircuitBreaker[[]recommend.Track](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,           // Requests allowed in half-open state
		Interval:    time.Minute, // Window for counting failures
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Require a minimum sample before tripping.
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				log.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening catalog circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			log.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			// Consecutive failures are no longer meaningful once the
			// circuit closes.
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerCatalog{
		inner:  inner,
		cb:     cb,
		logger: log,
		name:   name,
	}
}

// Candidates fetches candidates from the wrapped provider, recording
// the outcome on the breaker.
func (g *BreakerCatalog) Candidates(ctx context.Context, userID string) ([]recommend.Track, error) {
	tracks, err := g.cb.Execute(func() ([]recommend.Track, error) {
		return g.inner.Candidates(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
			g.logger.Warn().Err(err).Msg("Catalog request rejected by open circuit")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()

			counts := g.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(g.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(g.name).Set(0)

	return tracks, nil
}

// State reports the current breaker state.
func (g *BreakerCatalog) State() gobreaker.State {
	return g.cb.State()
}

// stateToFloat converts a breaker state to the gauge encoding.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts a breaker state to a label value.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Interface check.
var _ recommend.CatalogProvider = (*BreakerCatalog)(nil)
