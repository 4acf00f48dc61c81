// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package recommend

import (
	"github.com/tomtom215/euphonia/internal/mood"
)

// ColdStartStrategy produces recommendations for users without a
// reliable listening pattern. It runs the engine's scoring pipeline
// with ColdStartConfig, so mood fit dominates and the pattern
// component carries no weight.
//
// Recommend takes this path automatically. The strategy exists for
// callers that fetch candidates themselves and want ranked tracks
// without going through request orchestration.
type ColdStartStrategy struct {
	engine *Engine
}

// NewColdStartStrategy returns a strategy bound to the engine's
// rerankers and clock.
func NewColdStartStrategy(e *Engine) *ColdStartStrategy {
	return &ColdStartStrategy{engine: e}
}

// Generate scores the candidates against the mood profile, applies
// the registered rerankers, and returns the top limit tracks. A
// non-positive limit selects the engine default.
func (s *ColdStartStrategy) Generate(candidates []Track, profile mood.Profile, recentTrackIDs []string, limit int) ([]ScoredTrack, error) {
	cfg := ColdStartConfig()
	scored, err := s.engine.GenerateRecommendations(candidates, nil, profile, recentTrackIDs, cfg)
	if err != nil {
		return nil, err
	}

	ranked := s.engine.applyRerankers(scored, cfg.DiversityThreshold)
	if limit <= 0 {
		limit = s.engine.config.DefaultLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
