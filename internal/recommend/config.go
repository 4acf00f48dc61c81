// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package recommend

import (
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// ErrInvalidConfig is wrapped by every configuration validation error
// so callers can distinguish bad config from runtime failures.
var ErrInvalidConfig = errors.New("invalid recommendation config")

// weightSumTolerance is the permitted deviation of the four scoring
// weights from an exact sum of 1.0. Weights outside the tolerance are
// rejected rather than renormalized.
const weightSumTolerance = 1e-3

// Config holds the scoring weights and tuning parameters for a single
// recommendation pass. A Config is a plain value: callers may copy it
// freely and a validated Config is never mutated by the engine.
type Config struct {
	// PatternWeight scales the listening-pattern fit score.
	// Default: 0.40.
	PatternWeight float64 `json:"pattern_weight"`

	// MoodWeight scales the mood profile fit score.
	// Default: 0.30.
	MoodWeight float64 `json:"mood_weight"`

	// DiversityWeight scales the dissimilarity score.
	// Default: 0.15.
	DiversityWeight float64 `json:"diversity_weight"`

	// ContextWeight scales the recency, time-of-day, and popularity
	// score. Default: 0.15.
	ContextWeight float64 `json:"context_weight"`

	// GaussianSigma is the width of the Gaussian used to score how
	// closely a descriptor dimension matches the pattern mean.
	// Must be positive. Default: 0.2.
	GaussianSigma float64 `json:"gaussian_sigma"`

	// DiversityThreshold is the pairwise similarity above which the
	// diversity filter drops a track. Default: 0.85.
	DiversityThreshold float64 `json:"diversity_threshold"`

	// RecentTrackPenalty is the maximum score reduction applied to a
	// track the user played recently. The penalty decays linearly
	// with the track's position in the history. Default: 0.30.
	RecentTrackPenalty float64 `json:"recent_track_penalty"`

	// RecentTrackWindow is the number of history entries the recency
	// penalty considers. Must be at least 1. Default: 20.
	RecentTrackWindow int `json:"recent_track_window"`
}

// DefaultConfig returns the standard scoring configuration used when
// a reliable listening pattern is available.
func DefaultConfig() Config {
	return Config{
		PatternWeight:      0.40,
		MoodWeight:         0.30,
		DiversityWeight:    0.15,
		ContextWeight:      0.15,
		GaussianSigma:      0.2,
		DiversityThreshold: 0.85,
		RecentTrackPenalty: 0.30,
		RecentTrackWindow:  20,
	}
}

// ColdStartConfig returns the scoring configuration for users without
// a reliable listening pattern. The pattern weight is zero and the
// mood weight dominates so recommendations follow the requested mood.
func ColdStartConfig() Config {
	cfg := DefaultConfig()
	cfg.PatternWeight = 0
	cfg.MoodWeight = 0.70
	cfg.DiversityWeight = 0.15
	cfg.ContextWeight = 0.15
	return cfg
}

// NewConfig returns a Config with the given weights and default
// tuning parameters. The weights must be non-negative and sum to 1.0
// within tolerance.
func NewConfig(patternWeight, moodWeight, diversityWeight, contextWeight float64) (Config, error) {
	cfg := DefaultConfig()
	cfg.PatternWeight = patternWeight
	cfg.MoodWeight = moodWeight
	cfg.DiversityWeight = diversityWeight
	cfg.ContextWeight = contextWeight
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks all fields and returns an error wrapping
// ErrInvalidConfig on the first violation. Weights that do not sum to
// 1.0 are rejected, never renormalized.
func (c Config) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"pattern_weight", c.PatternWeight},
		{"mood_weight", c.MoodWeight},
		{"diversity_weight", c.DiversityWeight},
		{"context_weight", c.ContextWeight},
	}
	sum := 0.0
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %f", ErrInvalidConfig, w.name, w.value)
		}
		sum += w.value
	}
	if diff := sum - 1.0; diff > weightSumTolerance || diff < -weightSumTolerance {
		return fmt.Errorf("%w: weights must sum to 1.0, got %f", ErrInvalidConfig, sum)
	}
	if c.GaussianSigma <= 0 {
		return fmt.Errorf("%w: gaussian_sigma must be positive, got %f", ErrInvalidConfig, c.GaussianSigma)
	}
	if c.DiversityThreshold < 0 || c.DiversityThreshold > 1 {
		return fmt.Errorf("%w: diversity_threshold must be in [0, 1], got %f", ErrInvalidConfig, c.DiversityThreshold)
	}
	if c.RecentTrackPenalty < 0 || c.RecentTrackPenalty > 1 {
		return fmt.Errorf("%w: recent_track_penalty must be in [0, 1], got %f", ErrInvalidConfig, c.RecentTrackPenalty)
	}
	if c.RecentTrackWindow < 1 {
		return fmt.Errorf("%w: recent_track_window must be at least 1, got %d", ErrInvalidConfig, c.RecentTrackWindow)
	}
	return nil
}

// CacheConfig controls the engine's response cache.
type CacheConfig struct {
	// Enabled turns response caching on.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is how long a cached response stays valid.
	// Default: 10 minutes.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the cache size. Zero means unbounded.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// MarshalJSON renders TTL as a duration string.
func (c CacheConfig) MarshalJSON() ([]byte, error) {
	type Alias CacheConfig
	return json.Marshal(&struct {
		Alias
		TTL string `json:"ttl"`
	}{
		Alias: Alias(c),
		TTL:   c.TTL.String(),
	})
}

// EngineConfig holds engine-level settings alongside the default
// scoring configuration.
type EngineConfig struct {
	// Scoring is the default per-request scoring configuration.
	Scoring Config `json:"scoring"`

	// Cache configures the response cache.
	Cache CacheConfig `json:"cache"`

	// DefaultLimit is the number of tracks returned when a request
	// does not specify a limit. Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the per-request limit. Default: 100.
	MaxLimit int `json:"max_limit"`

	// HistoryWindow is the number of recent plays fetched for the
	// recency penalty. Default: 20.
	HistoryWindow int `json:"history_window"`
}

// DefaultEngineConfig returns an EngineConfig with production defaults.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Scoring: DefaultConfig(),
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 10000,
		},
		DefaultLimit:  10,
		MaxLimit:      100,
		HistoryWindow: 20,
	}
}

// Validate checks the engine configuration.
func (c *EngineConfig) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("%w: default_limit must be at least 1, got %d", ErrInvalidConfig, c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("%w: max_limit must be at least default_limit, got %d", ErrInvalidConfig, c.MaxLimit)
	}
	if c.HistoryWindow < 1 {
		return fmt.Errorf("%w: history_window must be at least 1, got %d", ErrInvalidConfig, c.HistoryWindow)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: cache.ttl must be positive when caching is enabled, got %s", ErrInvalidConfig, c.Cache.TTL)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("%w: cache.max_entries must be non-negative, got %d", ErrInvalidConfig, c.Cache.MaxEntries)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *EngineConfig) Clone() *EngineConfig {
	clone := *c
	return &clone
}
