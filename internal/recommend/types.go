// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/euphonia/internal/feature"
	"github.com/tomtom215/euphonia/internal/pattern"
)

// Track is a catalog entry eligible for recommendation.
type Track struct {
	// ID uniquely identifies the track within the catalog.
	ID string `json:"id"`

	// Title is the track title for display purposes.
	Title string `json:"title"`

	// Artist is the primary artist name.
	Artist string `json:"artist"`

	// Album is the album name, empty for singles.
	Album string `json:"album,omitempty"`

	// Genres lists genre labels attached to the track.
	Genres []string `json:"genres,omitempty"`

	// DurationMS is the track length in milliseconds.
	DurationMS int `json:"duration_ms,omitempty"`

	// Popularity is an optional 0-100 popularity rank.
	// Nil means popularity is unknown and no boost is applied.
	Popularity *int `json:"popularity,omitempty"`

	// PreviewAvailable reports whether a playable preview clip exists.
	// Informational only; the scorer does not consume it.
	PreviewAvailable bool `json:"preview_available,omitempty"`

	// Features holds the audio descriptor for the track.
	// Tracks with nil Features are skipped during scoring.
	Features *feature.AudioDescriptor `json:"features,omitempty"`
}

// ScoredTrack pairs a track with its total score and the four
// component scores that produced it.
type ScoredTrack struct {
	// Track is the recommended track.
	Track Track `json:"track"`

	// TotalScore is the weighted blend of the component scores.
	TotalScore float64 `json:"total_score"`

	// PatternScore measures fit against the user's listening pattern.
	PatternScore float64 `json:"pattern_score"`

	// MoodScore measures fit against the requested mood profile.
	MoodScore float64 `json:"mood_score"`

	// DiversityScore rewards dissimilarity to earlier candidates.
	DiversityScore float64 `json:"diversity_score"`

	// ContextScore blends recency, time of day, and popularity.
	ContextScore float64 `json:"context_score"`
}

// Request is a recommendation request for a single user and mood.
type Request struct {
	// UserID identifies the requesting user.
	UserID string `json:"user_id"`

	// Mood names the desired mood profile. Unknown moods fall back
	// to the neutral profile.
	Mood string `json:"mood"`

	// Limit is the maximum number of tracks to return.
	// Zero or negative selects the engine default.
	Limit int `json:"limit,omitempty"`

	// RequestID is an optional caller-supplied correlation ID.
	// Generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// Config optionally overrides the engine's scoring weights for
	// this request. Nil uses the engine configuration.
	Config *Config `json:"config,omitempty"`
}

// Response is the result of a recommendation request.
type Response struct {
	// Tracks holds the recommended tracks in descending score order.
	Tracks []ScoredTrack `json:"tracks"`

	// TotalCandidates is the number of catalog candidates considered.
	TotalCandidates int `json:"total_candidates"`

	// SkippedNoFeatures is the number of candidates skipped because
	// they carry no audio descriptor.
	SkippedNoFeatures int `json:"skipped_no_features"`

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries per-request diagnostics.
type ResponseMetadata struct {
	// RequestID correlates the response with its request.
	RequestID string `json:"request_id"`

	// UserID is the user the recommendations were generated for.
	UserID string `json:"user_id"`

	// Mood is the resolved mood profile name, which may differ from
	// the requested mood when the fallback profile was used.
	Mood string `json:"mood"`

	// ColdStart reports whether the cold-start strategy produced the
	// response because no reliable listening pattern was available.
	ColdStart bool `json:"cold_start"`

	// CacheHit reports whether the response was served from cache.
	CacheHit bool `json:"cache_hit"`

	// LatencyMS is the request processing time in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// GeneratedAt is when the response was computed.
	GeneratedAt time.Time `json:"generated_at"`
}

// CatalogProvider supplies candidate tracks for a user.
//
// Implementations decide which slice of the catalog a user may be
// recommended from, for example after market or ownership filtering.
type CatalogProvider interface {
	// Candidates returns the tracks eligible for recommendation to
	// the given user. The returned slice is not retained.
	Candidates(ctx context.Context, userID string) ([]Track, error)
}

// PatternProvider supplies aggregated listening patterns.
type PatternProvider interface {
	// Pattern returns the user's listening pattern, or nil when no
	// pattern has been computed for the user yet.
	Pattern(ctx context.Context, userID string) (*pattern.UserPattern, error)
}

// RecentPlaysProvider supplies a user's most recent play history.
type RecentPlaysProvider interface {
	// RecentTrackIDs returns up to limit track IDs ordered from most
	// to least recent.
	RecentTrackIDs(ctx context.Context, userID string, limit int) ([]string, error)
}

// Providers bundles the data sources an engine reads from.
//
// Catalog is required. Patterns and RecentPlays may be nil, in which
// case every request takes the cold-start path with an empty history.
type Providers struct {
	Catalog     CatalogProvider
	Patterns    PatternProvider
	RecentPlays RecentPlaysProvider
}

// Reranker reorders or filters a scored list after ranking.
//
// Implementations receive tracks in descending score order and must
// preserve that invariant for the tracks they keep.
type Reranker interface {
	// Rerank returns the reordered or filtered list. The threshold
	// carries the similarity bound from the active scoring config.
	Rerank(tracks []ScoredTrack, threshold float64) []ScoredTrack

	// Name returns a short identifier for logging.
	Name() string
}

// Metrics is a point-in-time snapshot of engine counters.
type Metrics struct {
	// RequestCount is the total number of Recommend calls.
	RequestCount int64 `json:"request_count"`

	// CacheHits counts responses served from the response cache.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses counts requests that required full computation.
	CacheMisses int64 `json:"cache_misses"`

	// ColdStarts counts responses produced by the cold-start strategy.
	ColdStarts int64 `json:"cold_starts"`

	// ErrorCount counts requests that failed.
	ErrorCount int64 `json:"error_count"`

	// CandidatesScored counts candidates that received a score.
	CandidatesScored int64 `json:"candidates_scored"`

	// CandidatesSkipped counts candidates skipped for missing features.
	CandidatesSkipped int64 `json:"candidates_skipped"`
}
