// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/euphonia/config.yaml",
	"/etc/euphonia/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix shared by all Euphonia environment variables.
const EnvPrefix = "EUPHONIA_"

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
//   - Validation of every field before the config reaches the engine
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := DefaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// EUPHONIA_PATTERN_WEIGHT -> engine.scoring.pattern_weight
	// EUPHONIA_LOG_LEVEL -> logging.level
	envProvider := env.Provider(EnvPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc transforms environment variable names to koanf config paths.
// The EUPHONIA_ prefix is stripped before the lookup.
//
// Examples:
//   - EUPHONIA_PATTERN_WEIGHT -> engine.scoring.pattern_weight
//   - EUPHONIA_CACHE_TTL -> engine.cache.ttl
//   - EUPHONIA_REFRESH_INTERVAL -> refresh.interval
//   - EUPHONIA_LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	envMappings := map[string]string{
		// Scoring weight mappings
		"pattern_weight":       "engine.scoring.pattern_weight",
		"mood_weight":          "engine.scoring.mood_weight",
		"diversity_weight":     "engine.scoring.diversity_weight",
		"context_weight":       "engine.scoring.context_weight",
		"gaussian_sigma":       "engine.scoring.gaussian_sigma",
		"diversity_threshold":  "engine.scoring.diversity_threshold",
		"recent_track_penalty": "engine.scoring.recent_track_penalty",
		"recent_track_window":  "engine.scoring.recent_track_window",

		// Response cache mappings
		"cache_enabled":     "engine.cache.enabled",
		"cache_ttl":         "engine.cache.ttl",
		"cache_max_entries": "engine.cache.max_entries",

		// Engine limit mappings
		"default_limit":  "engine.default_limit",
		"max_limit":      "engine.max_limit",
		"history_window": "engine.history_window",

		// Source mappings
		"catalog_path":        "source.catalog_path",
		"source_name":         "source.name",
		"requests_per_second": "source.requests_per_second",
		"burst":               "source.burst",
		"breaker_enabled":     "source.breaker_enabled",

		// Refresh mappings
		"refresh_enabled":      "refresh.enabled",
		"refresh_interval":     "refresh.interval",
		"refresh_task_timeout": "refresh.task_timeout",
		"refresh_run_on_start": "refresh.run_on_start",
		"refresh_window":       "refresh.window",
		"sweep_interval":       "refresh.sweep_interval",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// GetKoanfInstance returns a new Koanf instance for advanced usage.
// This is useful for:
//   - Hot-reload scenarios (with proper mutex protection)
//   - Custom configuration sources
//   - Testing with mock configurations
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// Note: The caller is responsible for mutex protection when accessing
// configuration during reloads.
//
// Example usage:
//
//	var cfgMu sync.RWMutex
//	var cfg *config.Config
//
//	err := config.WatchConfigFile(configPath, func() {
//	    cfgMu.Lock()
//	    defer cfgMu.Unlock()
//	    newCfg, err := config.Load()
//	    if err != nil {
//	        logging.Err(err).Msg("Config reload failed")
//	        return
//	    }
//	    cfg = newCfg
//	    logging.Info().Msg("Configuration reloaded")
//	})
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	// Start watching the file for changes
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
