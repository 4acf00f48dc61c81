// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package recommend

import (
	"errors"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.PatternWeight != 0.40 {
		t.Errorf("PatternWeight = %f, want 0.40", cfg.PatternWeight)
	}
	if cfg.MoodWeight != 0.30 {
		t.Errorf("MoodWeight = %f, want 0.30", cfg.MoodWeight)
	}
	if cfg.DiversityWeight != 0.15 {
		t.Errorf("DiversityWeight = %f, want 0.15", cfg.DiversityWeight)
	}
	if cfg.ContextWeight != 0.15 {
		t.Errorf("ContextWeight = %f, want 0.15", cfg.ContextWeight)
	}
	if cfg.RecentTrackWindow != 20 {
		t.Errorf("RecentTrackWindow = %d, want 20", cfg.RecentTrackWindow)
	}
}

func TestColdStartConfig(t *testing.T) {
	cfg := ColdStartConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("cold-start config should validate: %v", err)
	}
	if cfg.PatternWeight != 0 {
		t.Errorf("PatternWeight = %f, want 0", cfg.PatternWeight)
	}
	if cfg.MoodWeight != 0.70 {
		t.Errorf("MoodWeight = %f, want 0.70", cfg.MoodWeight)
	}
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(0.25, 0.25, 0.25, 0.25)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if cfg.PatternWeight != 0.25 || cfg.ContextWeight != 0.25 {
		t.Errorf("weights not applied: %+v", cfg)
	}
	if cfg.GaussianSigma != 0.2 {
		t.Errorf("GaussianSigma = %f, want default 0.2", cfg.GaussianSigma)
	}

	if _, err := NewConfig(0.5, 0.5, 0.5, 0.5); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for bad weight sum, got %v", err)
	}
	if _, err := NewConfig(0.3, 0.3, 0.3, 0.2); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for sum 1.1, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errPart string
	}{
		{
			name:   "default is valid",
			mutate: func(*Config) {},
		},
		{
			name: "sum within tolerance",
			mutate: func(c *Config) {
				c.PatternWeight = 0.4005
			},
		},
		{
			name: "negative weight",
			mutate: func(c *Config) {
				c.MoodWeight = -0.1
				c.PatternWeight = 0.8
			},
			wantErr: true,
			errPart: "mood_weight",
		},
		{
			name: "sum too high",
			mutate: func(c *Config) {
				c.PatternWeight = 0.6
			},
			wantErr: true,
			errPart: "sum to 1.0",
		},
		{
			name: "sum too low",
			mutate: func(c *Config) {
				c.ContextWeight = 0.05
			},
			wantErr: true,
			errPart: "sum to 1.0",
		},
		{
			name: "zero sigma",
			mutate: func(c *Config) {
				c.GaussianSigma = 0
			},
			wantErr: true,
			errPart: "gaussian_sigma",
		},
		{
			name: "negative sigma",
			mutate: func(c *Config) {
				c.GaussianSigma = -0.2
			},
			wantErr: true,
			errPart: "gaussian_sigma",
		},
		{
			name: "threshold above one",
			mutate: func(c *Config) {
				c.DiversityThreshold = 1.5
			},
			wantErr: true,
			errPart: "diversity_threshold",
		},
		{
			name: "negative threshold",
			mutate: func(c *Config) {
				c.DiversityThreshold = -0.1
			},
			wantErr: true,
			errPart: "diversity_threshold",
		},
		{
			name: "penalty above one",
			mutate: func(c *Config) {
				c.RecentTrackPenalty = 1.1
			},
			wantErr: true,
			errPart: "recent_track_penalty",
		},
		{
			name: "zero window",
			mutate: func(c *Config) {
				c.RecentTrackWindow = 0
			},
			wantErr: true,
			errPart: "recent_track_window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.errPart) {
					t.Errorf("error %q does not mention %q", err, tt.errPart)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EngineConfig)
		wantErr bool
	}{
		{
			name:   "default is valid",
			mutate: func(*EngineConfig) {},
		},
		{
			name: "cache disabled ignores ttl",
			mutate: func(c *EngineConfig) {
				c.Cache.Enabled = false
				c.Cache.TTL = 0
			},
		},
		{
			name: "zero default limit",
			mutate: func(c *EngineConfig) {
				c.DefaultLimit = 0
			},
			wantErr: true,
		},
		{
			name: "max limit below default",
			mutate: func(c *EngineConfig) {
				c.MaxLimit = 5
			},
			wantErr: true,
		},
		{
			name: "zero history window",
			mutate: func(c *EngineConfig) {
				c.HistoryWindow = 0
			},
			wantErr: true,
		},
		{
			name: "enabled cache with zero ttl",
			mutate: func(c *EngineConfig) {
				c.Cache.TTL = 0
			},
			wantErr: true,
		},
		{
			name: "negative max entries",
			mutate: func(c *EngineConfig) {
				c.Cache.MaxEntries = -1
			},
			wantErr: true,
		},
		{
			name: "invalid scoring config",
			mutate: func(c *EngineConfig) {
				c.Scoring.GaussianSigma = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEngineConfigClone(t *testing.T) {
	original := DefaultEngineConfig()
	clone := original.Clone()

	clone.DefaultLimit = 42
	clone.Scoring.PatternWeight = 0.9
	clone.Cache.TTL = time.Second

	if original.DefaultLimit != 10 {
		t.Errorf("clone mutation leaked into original DefaultLimit: %d", original.DefaultLimit)
	}
	if original.Scoring.PatternWeight != 0.40 {
		t.Errorf("clone mutation leaked into original Scoring: %f", original.Scoring.PatternWeight)
	}
	if original.Cache.TTL != 10*time.Minute {
		t.Errorf("clone mutation leaked into original Cache: %s", original.Cache.TTL)
	}
}

func TestCacheConfigMarshalJSON(t *testing.T) {
	cfg := CacheConfig{Enabled: true, TTL: 10 * time.Minute, MaxEntries: 100}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["ttl"] != "10m0s" {
		t.Errorf("ttl = %v, want \"10m0s\"", decoded["ttl"])
	}
	if decoded["enabled"] != true {
		t.Errorf("enabled = %v, want true", decoded["enabled"])
	}
}
