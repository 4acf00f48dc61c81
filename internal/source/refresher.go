// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package source

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/euphonia/internal/feature"
	"github.com/tomtom215/euphonia/internal/pattern"
	"github.com/tomtom215/euphonia/internal/recommend"
)

// DefaultRefreshWindow is how many recent plays feed a pattern when no
// window is configured.
const DefaultRefreshWindow = 20

// PlayHistory lists users with recorded plays and their recent tracks.
type PlayHistory interface {
	UserIDs() []string
	RecentTrackIDs(ctx context.Context, userID string, limit int) ([]string, error)
}

// TrackResolver resolves track IDs to catalog entries.
type TrackResolver interface {
	Track(id string) (recommend.Track, bool)
}

// PatternSink receives freshly aggregated patterns.
type PatternSink interface {
	Set(userID string, p pattern.UserPattern)
}

// PatternRefresher recomputes listening patterns from recorded plays.
// Each run walks every user with history, resolves the descriptors of
// their most recent plays through the catalog, and stores the
// aggregate.
type PatternRefresher struct {
	history  PlayHistory
	resolver TrackResolver
	sink     PatternSink
	logger   zerolog.Logger
	window   int
}

// NewPatternRefresher creates a refresher reading up to window plays
// per user. Non-positive window falls back to DefaultRefreshWindow.
func NewPatternRefresher(history PlayHistory, resolver TrackResolver, sink PatternSink, window int, logger zerolog.Logger) *PatternRefresher {
	if window < 1 {
		window = DefaultRefreshWindow
	}
	return &PatternRefresher{
		history:  history,
		resolver: resolver,
		sink:     sink,
		logger:   logger.With().Str("component", "pattern_refresher").Logger(),
		window:   window,
	}
}

// RefreshAll recomputes the pattern of every user with recorded plays
// and returns how many patterns were stored. Users whose recent plays
// resolve to no descriptors keep their previous pattern instead of
// being overwritten with an empty aggregate.
func (r *PatternRefresher) RefreshAll(ctx context.Context, now time.Time) (int, error) {
	refreshed := 0
	for _, userID := range r.history.UserIDs() {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}

		ok, err := r.refreshUser(ctx, userID, now)
		if err != nil {
			return refreshed, fmt.Errorf("refresh pattern for user %s: %w", userID, err)
		}
		if ok {
			refreshed++
		}
	}
	return refreshed, nil
}

// refreshUser aggregates one user's recent plays into a pattern.
func (r *PatternRefresher) refreshUser(ctx context.Context, userID string, now time.Time) (bool, error) {
	ids, err := r.history.RecentTrackIDs(ctx, userID, r.window)
	if err != nil {
		return false, err
	}

	descriptors := make([]feature.AudioDescriptor, 0, len(ids))
	unresolved := 0
	for _, id := range ids {
		track, ok := r.resolver.Track(id)
		if !ok || track.Features == nil {
			unresolved++
			continue
		}
		descriptors = append(descriptors, *track.Features)
	}

	if len(descriptors) == 0 {
		r.logger.Debug().
			Str("user_id", userID).
			Int("plays", len(ids)).
			Msg("No resolvable plays, keeping previous pattern")
		return false, nil
	}

	p := pattern.Aggregate(descriptors, now)
	r.sink.Set(userID, p)

	r.logger.Debug().
		Str("user_id", userID).
		Int("tracks", p.TotalTracksAnalyzed).
		Int("unresolved", unresolved).
		Bool("reliable", p.IsReliable()).
		Msg("Refreshed listening pattern")

	return true, nil
}
