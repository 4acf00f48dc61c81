// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

/*
Package config provides centralized configuration management for Euphonia.

This package handles loading, validation, and parsing of configuration for
all engine components. It ensures consistent configuration across the
recommendation pipeline and provides sensible defaults for every setting.

# Configuration Sources

The package layers configuration with Koanf v2, later sources overriding
earlier ones:

 1. Defaults: built-in values from DefaultConfig()
 2. Config file: optional YAML file (config.yaml)
 3. Environment variables: EUPHONIA_* overrides

# Configuration Structure

The package organizes configuration into logical groups:

  - EngineConfig: scoring weights, tuning parameters, response cache, limits
  - SourceConfig: track catalog loading and resilience decorators
  - RefreshConfig: background pattern refresh and cache sweep scheduling
  - LoggingConfig: log levels and output formats

# Environment Variables

Scoring (EngineConfig.Scoring):
  - EUPHONIA_PATTERN_WEIGHT: Pattern match weight (default: 0.40)
  - EUPHONIA_MOOD_WEIGHT: Mood profile weight (default: 0.30)
  - EUPHONIA_DIVERSITY_WEIGHT: Diversity weight (default: 0.15)
  - EUPHONIA_CONTEXT_WEIGHT: Time-of-day context weight (default: 0.15)
  - EUPHONIA_GAUSSIAN_SIGMA: Gaussian kernel width (default: 0.2)
  - EUPHONIA_DIVERSITY_THRESHOLD: Similarity cutoff (default: 0.85)
  - EUPHONIA_RECENT_TRACK_PENALTY: Recency penalty (default: 0.30)
  - EUPHONIA_RECENT_TRACK_WINDOW: Recency window size (default: 20)

Response cache (EngineConfig.Cache):
  - EUPHONIA_CACHE_ENABLED: Enable response caching (default: true)
  - EUPHONIA_CACHE_TTL: Cache entry lifetime (default: 10m)
  - EUPHONIA_CACHE_MAX_ENTRIES: Max cached responses (default: 10000)

Limits (EngineConfig):
  - EUPHONIA_DEFAULT_LIMIT: Tracks returned without an explicit limit (default: 10)
  - EUPHONIA_MAX_LIMIT: Per-request limit cap (default: 100)
  - EUPHONIA_HISTORY_WINDOW: Recent plays fetched per request (default: 20)

Catalog source (SourceConfig):
  - EUPHONIA_CATALOG_PATH: JSON catalog file loaded at startup (default: none)
  - EUPHONIA_SOURCE_NAME: Source label for logs and metrics (default: memory)
  - EUPHONIA_REQUESTS_PER_SECOND: Catalog read throttle, 0 disables (default: 0)
  - EUPHONIA_BURST: Rate limiter bucket size (default: 1)
  - EUPHONIA_BREAKER_ENABLED: Wrap the catalog in a circuit breaker (default: true)

Background refresh (RefreshConfig):
  - EUPHONIA_REFRESH_ENABLED: Start the refresh supervisor (default: true)
  - EUPHONIA_REFRESH_INTERVAL: Time between pattern refresh runs (default: 15m)
  - EUPHONIA_REFRESH_TASK_TIMEOUT: Bound on a single run (default: 1m)
  - EUPHONIA_REFRESH_RUN_ON_START: Refresh immediately at startup (default: true)
  - EUPHONIA_REFRESH_WINDOW: Plays aggregated per user (default: 20)
  - EUPHONIA_SWEEP_INTERVAL: Time between cache expiry sweeps (default: 1m)

Logging (LoggingConfig):
  - EUPHONIA_LOG_LEVEL: Minimum level: trace, debug, info, warn, error (default: info)
  - EUPHONIA_LOG_FORMAT: Output format: json or console (default: json)
  - EUPHONIA_LOG_CALLER: Include caller file and line (default: false)

# Config File Discovery

Load() looks for a YAML config file in order:

 1. The path in the CONFIG_PATH environment variable
 2. ./config.yaml, ./config.yml
 3. /etc/euphonia/config.yaml, /etc/euphonia/config.yml

A missing file is not an error; defaults and environment variables still
apply. Environment variables always override file values.

# Usage Example

Basic configuration loading:

	import "github.com/tomtom215/euphonia/internal/config"

	// Load configuration from defaults, file, and environment
	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load config")
	}

	logging.Init(cfg.ToLoggingConfig())

	engine, err := recommend.NewEngine(cfg.ToEngineConfig(), logging.Logger(), nil)
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to build engine")
	}
	engine.SetProviders(recommend.Providers{Catalog: catalog})

Testing with custom configuration:

	// Override environment variables for testing
	os.Setenv("EUPHONIA_DEFAULT_LIMIT", "25")
	os.Setenv("EUPHONIA_CACHE_TTL", "5m")

	cfg, err := config.Load()
	// Use cfg for testing

# Validation

Load() validates the configuration in two stages:

  - Field ranges via struct tags: weights in [0, 1], sigma > 0,
    limits and windows at least 1, log level and format from a fixed set
  - Cross-field rules via the engine: the four scoring weights must sum
    to 1.0 (tolerance 1e-3), max_limit >= default_limit, a positive
    cache TTL when caching is enabled, positive refresh intervals when
    refresh is enabled

# Defaults

The default scoring mix is 0.40 pattern, 0.30 mood, 0.15 diversity,
0.15 context. The response cache holds up to 10000 entries for 10
minutes each. Background refresh runs every 15 minutes with a one
minute task timeout, and the cache sweep runs every minute.

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for
concurrent access from multiple goroutines without synchronization.

# Performance

Configuration loading is fast and only happens once at startup. Values
are parsed and validated during Load(), so runtime access is direct
field reads with zero overhead.

# See Also

  - internal/recommend: the engine configuration the Engine section maps onto
  - internal/refresh: the service configuration the Refresh section maps onto
  - internal/validation: the struct tag validation framework
*/
package config
