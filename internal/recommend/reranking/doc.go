// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

// Package reranking implements post-processing for scored track lists.
//
// Rerankers operate on already-ranked recommendations and drop or
// reorder tracks to achieve objectives beyond the scored blend:
//
//	Scoring -> Initial Ranking -> Rerankers -> Final Ranking
//
// # Diversity Filter
//
// The diversity filter removes near-duplicate tracks. It walks the
// ranked list from the top and keeps a track only when its audio
// descriptor similarity to every already-kept track stays at or below
// the threshold:
//
//	keep(t) = max(similarity(t, kept)) <= threshold
//
// Because the walk starts from the highest score, the higher-ranked
// of two near-duplicates always survives. A threshold of 0.85 drops
// only close duplicates; lower thresholds push the list toward
// broader variety at the cost of total score.
//
// # Interface
//
// Filter implements the recommend.Reranker interface and receives the
// threshold from the active scoring configuration:
//
//	engine.RegisterReranker(reranking.NewFilter(logger))
//
// The standalone Apply function exposes the same semantics for
// callers that rank lists outside the engine.
//
// # Thread Safety
//
// Filters hold no per-request state and are safe for concurrent use.
package reranking
