// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package reranking

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/euphonia/internal/feature"
	"github.com/tomtom215/euphonia/internal/recommend"
)

// Apply walks the ranked list in order and drops every track whose
// descriptor similarity to any already-kept track exceeds the
// threshold. Similarity exactly at the threshold keeps the track, so
// a threshold of 1.0 keeps even identical descriptors.
//
// The first track is always kept. Tracks without features pass
// through unchanged and do not join the comparison set. Relative
// order of kept tracks is preserved.
func Apply(tracks []recommend.ScoredTrack, threshold float64) []recommend.ScoredTrack {
	if len(tracks) <= 1 {
		return tracks
	}

	kept := make([]recommend.ScoredTrack, 0, len(tracks))
	descs := make([]feature.AudioDescriptor, 0, len(tracks))
	for i := range tracks {
		if tracks[i].Track.Features == nil {
			kept = append(kept, tracks[i])
			continue
		}
		desc := *tracks[i].Track.Features
		if tooSimilar(desc, descs, threshold) {
			continue
		}
		kept = append(kept, tracks[i])
		descs = append(descs, desc)
	}
	return kept
}

// tooSimilar reports whether desc exceeds the similarity threshold
// against any kept descriptor.
//
//nolint:gocritic // hugeParam: desc passed by value for immutability
func tooSimilar(desc feature.AudioDescriptor, kept []feature.AudioDescriptor, threshold float64) bool {
	for i := range kept {
		if desc.SimilarityTo(kept[i]) > threshold {
			return true
		}
	}
	return false
}

// Filter is the diversity filter as an engine reranker. It logs how
// many near-duplicates each pass removed.
type Filter struct {
	logger zerolog.Logger
}

// NewFilter creates a diversity filter reranker.
func NewFilter(logger zerolog.Logger) *Filter {
	return &Filter{
		logger: logger.With().Str("component", "diversity_filter").Logger(),
	}
}

// Name returns the reranker identifier.
func (f *Filter) Name() string {
	return "diversity"
}

// Rerank applies the diversity filter with the caller's threshold.
func (f *Filter) Rerank(tracks []recommend.ScoredTrack, threshold float64) []recommend.ScoredTrack {
	kept := Apply(tracks, threshold)
	if dropped := len(tracks) - len(kept); dropped > 0 {
		f.logger.Debug().
			Int("dropped", dropped).
			Int("kept", len(kept)).
			Float64("threshold", threshold).
			Msg("Filtered near-duplicate tracks")
	}
	return kept
}

// Ensure Filter implements the interface.
var _ recommend.Reranker = (*Filter)(nil)
