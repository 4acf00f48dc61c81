// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

// Package logging provides centralized zerolog-based structured logging for Euphonia.
//
// This package implements a unified logging layer using zerolog, providing
// zero-allocation structured JSON logging for production and human-readable
// console output for development.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for production (machine-parseable)
//   - Console output format for development (human-readable)
//   - Component loggers with default fields
//   - slog adapter for Suture v4 integration
//
// # Quick Start
//
//	import "github.com/tomtom215/euphonia/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Caller: false,
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("user", "alice").Msg("Pattern refreshed")
//	logging.Error().Err(err).Str("track", trackID).Msg("Scoring failed")
//
// # Configuration
//
// The logging section of the application config (see internal/config) maps
// directly onto Config:
//
//	logging:
//	  level: info     # trace, debug, info, warn, error, fatal, panic
//	  format: json    # json or console
//	  caller: false
//
// Programmatic Configuration:
//
//	logging.Init(logging.Config{
//	    Level:     "debug",    // trace, debug, info, warn, error, fatal
//	    Format:    "console",  // json or console
//	    Caller:    true,       // Include caller info
//	    Timestamp: true,       // Include timestamps
//	    Output:    os.Stderr,  // Output writer
//	})
//
// # Log Levels
//
// Supported log levels (from most to least verbose):
//
//	trace  - Very detailed diagnostic information
//	debug  - Detailed diagnostic information
//	info   - General operational information (default)
//	warn   - Warning conditions that should be addressed
//	error  - Error conditions requiring attention
//	fatal  - Fatal errors that terminate the program
//	panic  - Panic conditions that crash the program
//
// # Structured Logging Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	// Good - structured, searchable, efficient
//	logging.Info().
//	    Str("user", userID).
//	    Int("tracks", trackCount).
//	    Dur("elapsed", duration).
//	    Msg("Recommendations generated")
//
//	// Avoid - unstructured, harder to parse
//	logging.Info().Msgf("Generated %d tracks for %s in %v", trackCount, userID, duration)
//
// # Component Loggers
//
// Create component-specific loggers with default fields:
//
//	// Create a logger for the pattern refresher
//	refreshLogger := logging.With().Str("component", "pattern_refresher").Logger()
//	refreshLogger.Info().Msg("Starting refresh")
//	refreshLogger.Error().Err(err).Msg("Refresh failed")
//
// # slog Adapter
//
// The package provides an slog adapter for libraries that require slog.Logger:
//
//	slogLogger := logging.NewSlogLogger()
//	// Use slogLogger with the refresh supervisor or other slog consumers
//
// # Output Formats
//
// JSON Format (Production):
//
//	{"level":"info","time":"2026-01-03T10:30:00Z","message":"Engine ready","tracks":4821}
//
// Console Format (Development):
//
//	10:30:00 INF Engine ready tracks=4821
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
//
// Use zerolog.Nop() when test output is not inspected.
//
// # See Also
//
//   - github.com/rs/zerolog: Underlying logging library
//   - internal/config: Maps the logging config section onto Config
//   - internal/refresh: Consumes the slog adapter for supervision events
package logging
