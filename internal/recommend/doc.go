// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

// Package recommend implements the mood-aware recommendation engine.
//
// # Scoring
//
// Every candidate track with an audio descriptor receives four
// component scores in [0, 1]:
//
//   - pattern: Gaussian fit against the user's aggregated listening
//     pattern, neutral 0.5 when no reliable pattern exists
//   - mood: cosine similarity to the mood profile's target descriptor
//     blended with tempo affinity
//   - diversity: dissimilarity to candidates scored earlier in the
//     same pass
//   - context: recency penalty, time-of-day fit, and an optional
//     popularity boost
//
// The total score is the weighted sum of the components. Weights are
// validated to sum to 1.0 and are never renormalized.
//
// # Pipeline
//
// Recommend resolves request defaults, consults the response cache,
// fetches candidates, the listening pattern, and recent plays from
// the configured providers, scores and ranks the candidates, applies
// registered rerankers, and trims to the request limit. Users without
// a reliable pattern take the cold-start path where mood fit carries
// most of the weight.
//
// # Usage
//
//	engine, err := recommend.NewEngine(nil, logger, nil)
//	if err != nil {
//		return err
//	}
//	engine.SetProviders(recommend.Providers{Catalog: catalog})
//	engine.RegisterReranker(reranking.NewFilter(logger))
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//		UserID: "user-1",
//		Mood:   "chill",
//	})
//
// The engine is safe for concurrent use. Time flows through an
// injectable Clock so cache expiry and time-of-day scoring are
// deterministic in tests.
package recommend
