// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

// Package mood holds the static mood profile registry.
//
// Ten fixed profiles (energetic, chill, happy, sad, focus, workout,
// party, romantic, sleep, meditation) map a listening intent to target
// descriptor values. The table is built once at package initialization
// and never mutated; lookups are case-insensitive and report unknown
// names as absence rather than errors. Profile.ToDescriptor bridges a
// profile into the feature package's similarity operations.
package mood
