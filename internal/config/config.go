// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package config

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/euphonia/internal/logging"
	"github.com/tomtom215/euphonia/internal/recommend"
	"github.com/tomtom215/euphonia/internal/refresh"
	"github.com/tomtom215/euphonia/internal/validation"
)

// Config holds all application configuration loaded from environment
// variables and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via EUPHONIA_* variables
//
// Configuration Categories:
//
//  1. Engine: Scoring weights, tuning parameters, response cache, limits
//  2. Source: Track catalog loading and resilience decorators
//  3. Refresh: Background pattern refresh and cache sweep scheduling
//  4. Logging: Log levels and output formats
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	logging.Init(cfg.ToLoggingConfig())
//	engine, err := recommend.NewEngine(cfg.ToEngineConfig(), logging.Logger(), nil)
//
// Validation:
// Load() validates every field and returns an error if values are out
// of range (weights outside [0, 1], non-positive intervals) or if the
// scoring weights do not sum to 1.0.
type Config struct {
	Engine  EngineConfig  `koanf:"engine"`
	Source  SourceConfig  `koanf:"source"`
	Refresh RefreshConfig `koanf:"refresh"`
	Logging LoggingConfig `koanf:"logging"`
}

// EngineConfig configures the recommendation engine.
type EngineConfig struct {
	Scoring ScoringConfig `koanf:"scoring"`
	Cache   CacheConfig   `koanf:"cache"`

	// DefaultLimit is the number of tracks returned when a request
	// does not specify a limit.
	DefaultLimit int `koanf:"default_limit" validate:"min=1"`

	// MaxLimit caps the per-request limit. Must be at least
	// DefaultLimit; the ordering is checked semantically in Validate.
	MaxLimit int `koanf:"max_limit" validate:"min=1"`

	// HistoryWindow is the number of recent plays fetched for the
	// recency penalty.
	HistoryWindow int `koanf:"history_window" validate:"min=1"`
}

// ScoringConfig holds the scoring weights and tuning parameters.
// The four weights must sum to 1.0; that cross-field rule is checked
// semantically in Validate, not by struct tags.
type ScoringConfig struct {
	PatternWeight      float64 `koanf:"pattern_weight" validate:"min=0,max=1"`
	MoodWeight         float64 `koanf:"mood_weight" validate:"min=0,max=1"`
	DiversityWeight    float64 `koanf:"diversity_weight" validate:"min=0,max=1"`
	ContextWeight      float64 `koanf:"context_weight" validate:"min=0,max=1"`
	GaussianSigma      float64 `koanf:"gaussian_sigma" validate:"gt=0"`
	DiversityThreshold float64 `koanf:"diversity_threshold" validate:"min=0,max=1"`
	RecentTrackPenalty float64 `koanf:"recent_track_penalty" validate:"min=0,max=1"`
	RecentTrackWindow  int     `koanf:"recent_track_window" validate:"min=1"`
}

// CacheConfig configures the engine's response cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries" validate:"min=0"`
}

// SourceConfig configures the track catalog source and its resilience
// decorators.
type SourceConfig struct {
	// CatalogPath is an optional JSON file the catalog is loaded from
	// at startup. Empty means the catalog starts empty and is
	// populated programmatically.
	CatalogPath string `koanf:"catalog_path"`

	// Name labels the source in logs and metrics.
	Name string `koanf:"name"`

	// RequestsPerSecond throttles catalog reads. Zero disables rate
	// limiting.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"min=0"`

	// Burst is the rate limiter bucket size.
	Burst int `koanf:"burst" validate:"min=0"`

	// BreakerEnabled wraps the catalog in a circuit breaker.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// RefreshConfig configures the background pattern refresh and cache
// sweep services.
type RefreshConfig struct {
	// Enabled starts the refresh supervisor.
	Enabled bool `koanf:"enabled"`

	// Interval is the time between pattern refresh runs.
	Interval time.Duration `koanf:"interval"`

	// TaskTimeout bounds a single refresh run.
	TaskTimeout time.Duration `koanf:"task_timeout"`

	// RunOnStart runs a refresh immediately at startup instead of
	// waiting for the first tick.
	RunOnStart bool `koanf:"run_on_start"`

	// Window is the number of recent plays aggregated per user.
	Window int `koanf:"window" validate:"min=1"`

	// SweepInterval is the time between cache expiry sweeps.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// DefaultConfig returns a Config with all default values.
// These defaults are applied first, then overridden by config file and
// env vars.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Scoring: ScoringConfig{
				PatternWeight:      0.40,
				MoodWeight:         0.30,
				DiversityWeight:    0.15,
				ContextWeight:      0.15,
				GaussianSigma:      0.2,
				DiversityThreshold: 0.85,
				RecentTrackPenalty: 0.30,
				RecentTrackWindow:  20,
			},
			Cache: CacheConfig{
				Enabled:    true,
				TTL:        10 * time.Minute,
				MaxEntries: 10000,
			},
			DefaultLimit:  10,
			MaxLimit:      100,
			HistoryWindow: 20,
		},
		Source: SourceConfig{
			CatalogPath:       "",
			Name:              "memory",
			RequestsPerSecond: 0, // Rate limiting disabled by default
			Burst:             1,
			BreakerEnabled:    true,
		},
		Refresh: RefreshConfig{
			Enabled:       true,
			Interval:      15 * time.Minute,
			TaskTimeout:   time.Minute,
			RunOnStart:    true,
			Window:        20,
			SweepInterval: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration. Struct tags are validated first
// via the validation package, giving per-field errors; the weight-sum
// rule and other cross-field constraints are then checked through the
// engine configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("config field validation: %w", err)
	}
	if err := c.ToEngineConfig().Validate(); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}
	return c.validateRefresh()
}

func (c *Config) validateRefresh() error {
	if !c.Refresh.Enabled {
		return nil
	}
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be positive when refresh is enabled, got %s", c.Refresh.Interval)
	}
	if c.Refresh.TaskTimeout <= 0 {
		return fmt.Errorf("refresh.task_timeout must be positive when refresh is enabled, got %s", c.Refresh.TaskTimeout)
	}
	if c.Refresh.SweepInterval <= 0 {
		return fmt.Errorf("refresh.sweep_interval must be positive when refresh is enabled, got %s", c.Refresh.SweepInterval)
	}
	return nil
}

// ToEngineConfig maps the engine section onto the engine's own
// configuration type.
func (c *Config) ToEngineConfig() *recommend.EngineConfig {
	return &recommend.EngineConfig{
		Scoring: recommend.Config{
			PatternWeight:      c.Engine.Scoring.PatternWeight,
			MoodWeight:         c.Engine.Scoring.MoodWeight,
			DiversityWeight:    c.Engine.Scoring.DiversityWeight,
			ContextWeight:      c.Engine.Scoring.ContextWeight,
			GaussianSigma:      c.Engine.Scoring.GaussianSigma,
			DiversityThreshold: c.Engine.Scoring.DiversityThreshold,
			RecentTrackPenalty: c.Engine.Scoring.RecentTrackPenalty,
			RecentTrackWindow:  c.Engine.Scoring.RecentTrackWindow,
		},
		Cache: recommend.CacheConfig{
			Enabled:    c.Engine.Cache.Enabled,
			TTL:        c.Engine.Cache.TTL,
			MaxEntries: c.Engine.Cache.MaxEntries,
		},
		DefaultLimit:  c.Engine.DefaultLimit,
		MaxLimit:      c.Engine.MaxLimit,
		HistoryWindow: c.Engine.HistoryWindow,
	}
}

// ToLoggingConfig maps the logging section onto the logging package's
// configuration type.
func (c *Config) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Caller:    c.Logging.Caller,
		Timestamp: true,
	}
}

// PatternRefreshConfig maps the refresh section onto the pattern
// refresh service configuration.
func (c *Config) PatternRefreshConfig() refresh.Config {
	return refresh.Config{
		Name:        "pattern-refresh",
		Interval:    c.Refresh.Interval,
		TaskTimeout: c.Refresh.TaskTimeout,
		RunOnStart:  c.Refresh.RunOnStart,
	}
}

// CacheSweepConfig maps the refresh section onto the cache sweep
// service configuration. The sweep waits a full interval before its
// first run.
func (c *Config) CacheSweepConfig() refresh.Config {
	return refresh.Config{
		Name:        "cache-sweep",
		Interval:    c.Refresh.SweepInterval,
		TaskTimeout: c.Refresh.TaskTimeout,
		RunOnStart:  false,
	}
}

// String renders the configuration as indented JSON for debug logging.
func (c *Config) String() string {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("config marshal error: %v", err)
	}
	return string(b)
}
