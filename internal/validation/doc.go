// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. The config
// package runs every loaded configuration struct through it before the values
// reach the engine, so out-of-range weights and intervals fail at startup with
// per-field messages instead of surfacing as scoring anomalies later.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Comprehensive error translation to human-readable messages
//   - Structured per-field error access (field, tag, param, value)
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type ScoringConfig struct {
//	    PatternWeight float64 `validate:"min=0,max=1"`
//	    MoodWeight    float64 `validate:"min=0,max=1"`
//	    GaussianSigma float64 `validate:"gt=0"`
//	    Window        int     `validate:"min=1"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    for _, fe := range verr.Errors() {
//	        logging.Error().
//	            Str("field", fe.Field()).
//	            Str("tag", fe.Tag()).
//	            Msg(fe.Error())
//	    }
//	    return verr
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n: Minimum length n characters
//   - max=n: Maximum length n characters
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - gt=n: Greater than n
//   - lt=n: Less than n
//   - min=n: Minimum value n
//   - max=n: Maximum value n
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// # Error Types
//
// ValidationError represents a single field validation failure:
//
//	type ValidationError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "1" for max=1)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// StructValidationError aggregates multiple field errors:
//
//	type StructValidationError struct {
//	    Errors() []ValidationError
//	    Fields() []string // Names of all failed fields
//	    Error()  string   // Combined message
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required   -> "Level is required"
//	min=1      -> "Window must be at least 1"
//	max=1      -> "PatternWeight must be at most 1"
//	gt=0       -> "GaussianSigma must be greater than 0"
//	gte=1      -> "Limit must be greater than or equal to 1"
//	lte=1000   -> "Limit must be less than or equal to 1000"
//	oneof=a b  -> "Format must be one of: a b"
//
// # Struct Tag Examples
//
// Scoring weight validation:
//
//	type ScoringConfig struct {
//	    PatternWeight      float64 `validate:"min=0,max=1"`
//	    DiversityThreshold float64 `validate:"min=0,max=1"`
//	    GaussianSigma      float64 `validate:"gt=0"`
//	    RecentTrackWindow  int     `validate:"min=1"`
//	}
//
// Enumerated settings:
//
//	type LoggingConfig struct {
//	    Level  string `validate:"omitempty,oneof=trace debug info warn error"`
//	    Format string `validate:"omitempty,oneof=json console"`
//	}
//
// Note that cross-field rules, such as the four scoring weights summing
// to 1.0, live in the owning package's Validate method rather than in
// struct tags; this package covers the per-field ranges.
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&cfg) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//   - Memory: ~500 bytes per cached struct type
//
// # See Also
//
//   - internal/config: Configuration structs validated at load time
//   - github.com/go-playground/validator/v10: Underlying library
package validation
