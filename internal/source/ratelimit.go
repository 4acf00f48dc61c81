// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package source

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/euphonia/internal/metrics"
	"github.com/tomtom215/euphonia/internal/recommend"
)

// RateLimitedCatalog wraps a CatalogProvider with a token bucket so
// bursts of recommendation traffic cannot overwhelm the source. Calls
// beyond the bucket wait for the next token rather than failing.
type RateLimitedCatalog struct {
	inner   recommend.CatalogProvider
	limiter *rate.Limiter
	logger  zerolog.Logger
	name    string
}

// NewRateLimitedCatalog creates a rate-limited catalog provider
// sustaining requestsPerSecond with the given burst. Burst below 1 is
// raised to 1. The name identifies the source in logs and metrics;
// empty defaults to "catalog".
func NewRateLimitedCatalog(inner recommend.CatalogProvider, name string, requestsPerSecond float64, burst int, logger zerolog.Logger) *RateLimitedCatalog {
	if name == "" {
		name = "catalog"
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedCatalog{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		logger:  logger.With().Str("component", "rate_limiter").Str("source", name).Logger(),
		name:    name,
	}
}

// Candidates waits for a rate limiter token, then delegates to the
// wrapped provider. It fails only when the context ends before a token
// becomes available.
func (rl *RateLimitedCatalog) Candidates(ctx context.Context, userID string) ([]recommend.Track, error) {
	// Allow consumes a token when one is free; the slow path below
	// only runs when the bucket is empty.
	if !rl.limiter.Allow() {
		metrics.SourceRateLimited.WithLabelValues(rl.name).Inc()
		rl.logger.Debug().Str("user_id", userID).Msg("Catalog call delayed by rate limiter")

		if err := rl.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	return rl.inner.Candidates(ctx, userID)
}

// Interface check.
var _ recommend.CatalogProvider = (*RateLimitedCatalog)(nil)
