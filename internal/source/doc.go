// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

// Package source provides the catalog, pattern, and play-history
// providers consumed by the recommendation engine, plus the protective
// wrapper guarding an unreliable catalog source.
//
// # Providers
//
// MemoryCatalog, MemoryPatternStore, and MemoryHistory implement the
// engine's CatalogProvider, PatternProvider, and RecentPlaysProvider
// interfaces entirely in memory. All are safe for concurrent use and
// suit embedded deployments and tests alike. MemoryRecentPlays serves
// fixed recent-track lists for hosts that track play order themselves,
// and a catalog can be loaded from a JSON track array with
// NewMemoryCatalogFromJSON.
//
// # Resilience
//
// BreakerCatalog and RateLimitedCatalog decorate any CatalogProvider
// and compose freely. The breaker opens once ten or more calls inside
// a one-minute window fail at a 60% rate and stays open for two
// minutes before probing the source again. The rate limiter holds a
// token bucket and makes callers wait for the next token instead of
// failing. Breaker transitions, per-result request counts, and rate
// limiter delays are all exported through the metrics package.
//
// # Pattern Refresh
//
// PatternRefresher periodically rebuilds every user's listening
// pattern from their recorded plays: it resolves each play to its
// audio descriptor through the catalog, aggregates the window with
// pattern.Aggregate, and stores the result. Plays that no longer
// resolve to a catalog entry are skipped, and users with nothing
// resolvable keep their previous pattern. The refresh package drives
// it on a schedule.
package source
