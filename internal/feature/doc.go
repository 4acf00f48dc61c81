// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

// Package feature defines the audio descriptor value type and its
// similarity operations.
//
// An AudioDescriptor is the numeric fingerprint of a single track:
// perceptual measures (energy, valence, danceability, ...), tempo,
// loudness, and categorical harmony fields (key, mode, time signature).
// Descriptors are immutable values: constructed once, then compared
// and passed by value.
//
// # Similarity
//
// Two complementary measures are provided:
//
//   - SimilarityTo: weighted-Euclidean distance folded into [0, 1],
//     sensitive to absolute feature offsets. Used for near-duplicate
//     detection and diversity scoring.
//   - CosineSimilarityTo: angle between the nine-dimensional continuous
//     feature vectors, scale-invariant. Used for mood-target matching.
//
// Both are pure functions: commutative, side-effect free, and
// deterministic. Tempo and loudness participate in normalized [0, 1]
// space so no single dimension dominates the distance.
package feature
