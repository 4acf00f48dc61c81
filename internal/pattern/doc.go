// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

// Package pattern models a user's historical listening profile.
//
// UserPattern carries per-feature means and standard deviations plus the
// sample count they rest on. Patterns below MinReliableTracks samples are
// unreliable and score with the neutral fallback; a missing pattern is a
// nil pointer, distinct from a zero value. Aggregate builds a pattern
// from a window of history descriptors.
package pattern
