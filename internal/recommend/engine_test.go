// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/euphonia/internal/feature"
	"github.com/tomtom215/euphonia/internal/logging"
	"github.com/tomtom215/euphonia/internal/mood"
	"github.com/tomtom215/euphonia/internal/pattern"
)

// testNoon falls in the midday bucket so time-of-day scoring is
// stable across test runs.
var testNoon = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock(now time.Time) *fixedClock {
	return &fixedClock{now: now}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type mockCatalog struct {
	mu     sync.Mutex
	tracks []Track
	err    error
	calls  int
}

func (m *mockCatalog) Candidates(_ context.Context, _ string) ([]Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.tracks, nil
}

func (m *mockCatalog) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockPatterns struct {
	pattern *pattern.UserPattern
	err     error
}

func (m *mockPatterns) Pattern(_ context.Context, _ string) (*pattern.UserPattern, error) {
	return m.pattern, m.err
}

type mockRecents struct {
	ids []string
	err error
}

func (m *mockRecents) RecentTrackIDs(_ context.Context, _ string, limit int) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.ids) > limit {
		return m.ids[:limit], nil
	}
	return m.ids, nil
}

// takeFirst is a trivial reranker keeping only the top track.
type takeFirst struct{}

func (takeFirst) Rerank(tracks []ScoredTrack, _ float64) []ScoredTrack {
	if len(tracks) > 1 {
		return tracks[:1]
	}
	return tracks
}

func (takeFirst) Name() string { return "take_first" }

func makeTrack(id string, energy, valence, dance, tempo float64) Track {
	return Track{
		ID:     id,
		Title:  "Title " + id,
		Artist: "Artist " + id,
		Features: &feature.AudioDescriptor{
			Energy:       energy,
			Valence:      valence,
			Danceability: dance,
			TempoBPM:     tempo,
			Acousticness: 0.3,
			Liveness:     0.15,
			Speechiness:  0.05,
			LoudnessDB:   -10,
			Mode:         1,
		},
	}
}

func newTestEngine(t *testing.T, cfg *EngineConfig, clock Clock) *Engine {
	t.Helper()
	if clock == nil {
		clock = newFixedClock(testNoon)
	}
	e, err := NewEngine(cfg, zerolog.Nop(), clock)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

// energeticCatalog builds candidates where half sit close to the
// energetic profile target and half sit far from it.
func energeticCatalog(t *testing.T, n int) []Track {
	t.Helper()
	profile, ok := mood.Get("energetic")
	if !ok {
		t.Fatal("energetic profile missing")
	}
	tracks := make([]Track, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("track-%02d", i)
		if i%2 == 0 {
			jitter := float64(i) * 0.01
			tracks = append(tracks, makeTrack(id,
				profile.TargetEnergy-jitter,
				profile.TargetValence-jitter,
				profile.TargetDanceability-jitter,
				profile.TargetTempoBPM-float64(i)))
		} else {
			tracks = append(tracks, makeTrack(id, 0.05, 0.1, 0.1, 65))
		}
	}
	return tracks
}

func TestNewEngine(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		e := newTestEngine(t, nil, nil)
		if got := e.GetConfig().DefaultLimit; got != 10 {
			t.Errorf("DefaultLimit = %d, want 10", got)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		cfg.DefaultLimit = 0
		if _, err := NewEngine(cfg, zerolog.Nop(), nil); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("config is copied", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		e := newTestEngine(t, cfg, nil)
		cfg.DefaultLimit = 99
		if got := e.GetConfig().DefaultLimit; got != 10 {
			t.Errorf("engine config mutated externally: %d", got)
		}
	})
}

func TestRecommendEmptyUserID(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 4)}})

	_, err := e.Recommend(context.Background(), Request{Mood: "happy"})
	if !errors.Is(err, ErrEmptyUserID) {
		t.Fatalf("expected ErrEmptyUserID, got %v", err)
	}
	if got := e.GetMetrics().ErrorCount; got != 1 {
		t.Errorf("ErrorCount = %d, want 1", got)
	}
}

func TestRecommendRequestIDFromContext(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 4)}})

	ctx := logging.ContextWithRequestID(context.Background(), "ctx-id-7")
	resp, err := e.Recommend(ctx, Request{UserID: "u1", Mood: "happy"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.Metadata.RequestID != "ctx-id-7" {
		t.Errorf("RequestID = %q, want ctx-id-7 from context", resp.Metadata.RequestID)
	}

	// An explicit request ID wins over the context value.
	resp, err = e.Recommend(ctx, Request{UserID: "u1", Mood: "sad", RequestID: "explicit-1"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.Metadata.RequestID != "explicit-1" {
		t.Errorf("RequestID = %q, want explicit-1", resp.Metadata.RequestID)
	}
}

func TestRecommendRankingAndLimit(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	tracks := energeticCatalog(t, 14)
	pat := reliablePattern(*tracks[0].Features, testNoon)
	e.SetProviders(Providers{
		Catalog:     &mockCatalog{tracks: tracks},
		Patterns:    &mockPatterns{pattern: pat},
		RecentPlays: &mockRecents{},
	})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "energetic"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if len(resp.Tracks) != 10 {
		t.Errorf("len(Tracks) = %d, want default limit 10", len(resp.Tracks))
	}
	if resp.TotalCandidates != 14 {
		t.Errorf("TotalCandidates = %d, want 14", resp.TotalCandidates)
	}
	for i := 1; i < len(resp.Tracks); i++ {
		if resp.Tracks[i-1].TotalScore < resp.Tracks[i].TotalScore {
			t.Fatalf("tracks not sorted at %d: %f < %f", i, resp.Tracks[i-1].TotalScore, resp.Tracks[i].TotalScore)
		}
	}

	meta := resp.Metadata
	if meta.RequestID == "" {
		t.Error("RequestID not generated")
	}
	if meta.UserID != "u1" || meta.Mood != "energetic" {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.ColdStart {
		t.Error("ColdStart = true with reliable pattern")
	}
	if meta.CacheHit {
		t.Error("CacheHit = true on first request")
	}
	if !meta.GeneratedAt.Equal(testNoon) {
		t.Errorf("GeneratedAt = %s, want %s", meta.GeneratedAt, testNoon)
	}
}

func TestRecommendColdStart(t *testing.T) {
	tests := []struct {
		name     string
		patterns PatternProvider
	}{
		{"nil pattern", &mockPatterns{}},
		{"unreliable pattern", &mockPatterns{pattern: &pattern.UserPattern{TotalTracksAnalyzed: 3}}},
		{"no pattern provider", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil, nil)
			profile, _ := mood.Get("party")
			match := makeTrack("match", profile.TargetEnergy, profile.TargetValence, profile.TargetDanceability, profile.TargetTempoBPM)
			far := makeTrack("far", 0.05, 0.05, 0.1, profile.TargetTempoBPM-60)
			e.SetProviders(Providers{
				Catalog:  &mockCatalog{tracks: []Track{far, match}},
				Patterns: tt.patterns,
			})

			resp, err := e.Recommend(context.Background(), Request{UserID: "new-user", Mood: "party"})
			if err != nil {
				t.Fatalf("Recommend failed: %v", err)
			}
			if !resp.Metadata.ColdStart {
				t.Error("ColdStart = false, want true")
			}
			if resp.Tracks[0].Track.ID != "match" {
				t.Errorf("top track = %s, want mood match on cold start", resp.Tracks[0].Track.ID)
			}
			for _, st := range resp.Tracks {
				if st.PatternScore != 0.5 {
					t.Errorf("track %s PatternScore = %f, want neutral 0.5", st.Track.ID, st.PatternScore)
				}
			}
		})
	}
}

func TestRecommendUnknownMoodFallsBack(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 4)}})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "melancholic-dubstep"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.Metadata.Mood != "neutral" {
		t.Errorf("Mood = %q, want neutral fallback", resp.Metadata.Mood)
	}
	if len(resp.Tracks) == 0 {
		t.Error("fallback profile should still produce recommendations")
	}
}

func TestRecommendMoodNameNormalized(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 4)}})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "  CHILL "})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.Metadata.Mood != "chill" {
		t.Errorf("Mood = %q, want chill", resp.Metadata.Mood)
	}
}

func TestRecommendCacheRoundTrip(t *testing.T) {
	clock := newFixedClock(testNoon)
	e := newTestEngine(t, nil, clock)
	catalog := &mockCatalog{tracks: energeticCatalog(t, 6)}
	e.SetProviders(Providers{Catalog: catalog})

	first, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "happy"})
	if err != nil {
		t.Fatalf("first Recommend failed: %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first request should miss")
	}

	second, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "happy", RequestID: "req-2"})
	if err != nil {
		t.Fatalf("second Recommend failed: %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second request should hit the cache")
	}
	if second.Metadata.RequestID != "req-2" {
		t.Errorf("cached response RequestID = %q, want req-2", second.Metadata.RequestID)
	}
	if catalog.callCount() != 1 {
		t.Errorf("catalog calls = %d, want 1", catalog.callCount())
	}
	if len(second.Tracks) != len(first.Tracks) {
		t.Fatalf("cached tracks = %d, want %d", len(second.Tracks), len(first.Tracks))
	}
	for i := range second.Tracks {
		if second.Tracks[i].Track.ID != first.Tracks[i].Track.ID {
			t.Errorf("cached order differs at %d", i)
		}
	}

	// A different mood misses.
	if _, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "sad"}); err != nil {
		t.Fatalf("third Recommend failed: %v", err)
	}
	if catalog.callCount() != 2 {
		t.Errorf("catalog calls = %d, want 2 after distinct mood", catalog.callCount())
	}

	stats := e.CacheStats()
	if stats.Hits != 1 {
		t.Errorf("cache hits = %d, want 1", stats.Hits)
	}
	if stats.Entries != 2 {
		t.Errorf("cache entries = %d, want 2", stats.Entries)
	}
}

func TestRecommendCacheExpiry(t *testing.T) {
	clock := newFixedClock(testNoon)
	e := newTestEngine(t, nil, clock)
	catalog := &mockCatalog{tracks: energeticCatalog(t, 6)}
	e.SetProviders(Providers{Catalog: catalog})

	req := Request{UserID: "u1", Mood: "focus"}
	if _, err := e.Recommend(context.Background(), req); err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	clock.Advance(11 * time.Minute)
	resp, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend after expiry failed: %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("expired entry served as cache hit")
	}
	if catalog.callCount() != 2 {
		t.Errorf("catalog calls = %d, want 2", catalog.callCount())
	}
}

func TestRecommendCacheDisabled(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, nil)
	catalog := &mockCatalog{tracks: energeticCatalog(t, 6)}
	e.SetProviders(Providers{Catalog: catalog})

	req := Request{UserID: "u1", Mood: "happy"}
	for i := 0; i < 2; i++ {
		if _, err := e.Recommend(context.Background(), req); err != nil {
			t.Fatalf("Recommend %d failed: %v", i, err)
		}
	}
	if catalog.callCount() != 2 {
		t.Errorf("catalog calls = %d, want 2 with caching disabled", catalog.callCount())
	}
	if stats := e.CacheStats(); stats.Entries != 0 {
		t.Errorf("cache entries = %d, want 0", stats.Entries)
	}
}

func TestRecommendLimits(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.DefaultLimit = 2
	cfg.MaxLimit = 3
	e := newTestEngine(t, cfg, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 8)}})

	tests := []struct {
		name      string
		limit     int
		wantCount int
	}{
		{"zero limit uses default", 0, 2},
		{"explicit limit", 3, 3},
		{"limit capped at max", 500, 3},
		{"negative limit uses default", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "happy", Limit: tt.limit})
			if err != nil {
				t.Fatalf("Recommend failed: %v", err)
			}
			if len(resp.Tracks) != tt.wantCount {
				t.Errorf("len(Tracks) = %d, want %d", len(resp.Tracks), tt.wantCount)
			}
		})
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{}})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "sad"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(resp.Tracks) != 0 {
		t.Errorf("len(Tracks) = %d, want 0", len(resp.Tracks))
	}
	if resp.TotalCandidates != 0 {
		t.Errorf("TotalCandidates = %d, want 0", resp.TotalCandidates)
	}
	if resp.Metadata.Mood != "sad" {
		t.Errorf("Mood = %q, want sad", resp.Metadata.Mood)
	}
}

func TestRecommendSkipsTracksWithoutFeatures(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	tracks := energeticCatalog(t, 3)
	tracks = append(tracks, Track{ID: "no-features", Title: "Silent"})
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: tracks}})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "happy"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.SkippedNoFeatures != 1 {
		t.Errorf("SkippedNoFeatures = %d, want 1", resp.SkippedNoFeatures)
	}
	if len(resp.Tracks) != 3 {
		t.Errorf("len(Tracks) = %d, want 3", len(resp.Tracks))
	}
	for _, st := range resp.Tracks {
		if st.Track.ID == "no-features" {
			t.Error("featureless track was scored")
		}
	}
}

func TestRecommendProviderErrors(t *testing.T) {
	base := energeticCatalog(t, 4)

	tests := []struct {
		name      string
		providers Providers
		wantPart  string
	}{
		{
			name:      "catalog not set",
			providers: Providers{},
			wantPart:  "catalog provider not set",
		},
		{
			name:      "catalog error",
			providers: Providers{Catalog: &mockCatalog{err: errors.New("db down")}},
			wantPart:  "fetch candidates",
		},
		{
			name: "pattern error",
			providers: Providers{
				Catalog:  &mockCatalog{tracks: base},
				Patterns: &mockPatterns{err: errors.New("boom")},
			},
			wantPart: "fetch listening pattern",
		},
		{
			name: "recent plays error",
			providers: Providers{
				Catalog:     &mockCatalog{tracks: base},
				RecentPlays: &mockRecents{err: errors.New("boom")},
			},
			wantPart: "fetch recent plays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil, nil)
			e.SetProviders(tt.providers)

			_, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "happy"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not mention %q", err, tt.wantPart)
			}
			if got := e.GetMetrics().ErrorCount; got != 1 {
				t.Errorf("ErrorCount = %d, want 1", got)
			}
		})
	}
}

func TestRecommendRecencyPenalty(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	trackA := makeTrack("a", 0.6, 0.5, 0.7, 120)
	trackB := makeTrack("b", 0.6, 0.5, 0.7, 120)
	pat := reliablePattern(*trackA.Features, testNoon)

	noDiversity := Config{
		PatternWeight:      0.5,
		MoodWeight:         0.3,
		DiversityWeight:    0,
		ContextWeight:      0.2,
		GaussianSigma:      0.2,
		DiversityThreshold: 1.0,
		RecentTrackPenalty: 0.3,
		RecentTrackWindow:  20,
	}
	e.SetProviders(Providers{
		Catalog:     &mockCatalog{tracks: []Track{trackB, trackA}},
		Patterns:    &mockPatterns{pattern: pat},
		RecentPlays: &mockRecents{ids: []string{"b"}},
	})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "happy", Config: &noDiversity})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.Tracks[0].Track.ID != "a" {
		t.Errorf("top track = %s, want unplayed track a", resp.Tracks[0].Track.ID)
	}
	if resp.Tracks[0].ContextScore <= resp.Tracks[1].ContextScore {
		t.Errorf("recent track not penalized: %f <= %f", resp.Tracks[0].ContextScore, resp.Tracks[1].ContextScore)
	}
}

func TestRecommendPopularityBoost(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	popular := makeTrack("popular", 0.3, 0.3, 0.7, 120)
	hundred := 100
	popular.Popularity = &hundred
	obscure := makeTrack("obscure", 0.3, 0.3, 0.7, 120)
	zero := 0
	obscure.Popularity = &zero
	pat := reliablePattern(*popular.Features, testNoon)

	noDiversity := Config{
		PatternWeight:      0.5,
		MoodWeight:         0.3,
		DiversityWeight:    0,
		ContextWeight:      0.2,
		GaussianSigma:      0.2,
		DiversityThreshold: 1.0,
		RecentTrackPenalty: 0.3,
		RecentTrackWindow:  20,
	}
	e.SetProviders(Providers{
		Catalog:  &mockCatalog{tracks: []Track{obscure, popular}},
		Patterns: &mockPatterns{pattern: pat},
	})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "happy", Config: &noDiversity})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.Tracks[0].Track.ID != "popular" {
		t.Errorf("top track = %s, want popularity-boosted track", resp.Tracks[0].Track.ID)
	}
}

func TestRecommendInvalidRequestConfig(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 4)}})

	bad := DefaultConfig()
	bad.PatternWeight = 0.9
	_, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "happy", Config: &bad})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGenerateRecommendationsStableOrder(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	tracks := []Track{
		makeTrack("first", 0.6, 0.5, 0.7, 120),
		makeTrack("second", 0.6, 0.5, 0.7, 120),
		makeTrack("third", 0.6, 0.5, 0.7, 120),
	}
	profile, _ := mood.Get("happy")

	noDiversity := Config{
		PatternWeight:      0.5,
		MoodWeight:         0.3,
		DiversityWeight:    0,
		ContextWeight:      0.2,
		GaussianSigma:      0.2,
		DiversityThreshold: 1.0,
		RecentTrackPenalty: 0.3,
		RecentTrackWindow:  20,
	}
	scored, err := e.GenerateRecommendations(tracks, nil, profile, nil, noDiversity)
	if err != nil {
		t.Fatalf("GenerateRecommendations failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, id := range want {
		if scored[i].Track.ID != id {
			t.Errorf("position %d = %s, want %s (ties must keep catalog order)", i, scored[i].Track.ID, id)
		}
	}
}

func TestGenerateRecommendationsDiversityIncremental(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	base := makeTrack("base", 0.6, 0.5, 0.7, 120)
	twin := makeTrack("twin", 0.6, 0.5, 0.7, 120)
	outlier := Track{
		ID: "outlier",
		Features: &feature.AudioDescriptor{
			Energy:           0.05,
			Valence:          0.95,
			Danceability:     0.1,
			TempoBPM:         60,
			Acousticness:     0.9,
			Instrumentalness: 0.05,
			Liveness:         0.8,
			Speechiness:      0.5,
			LoudnessDB:       -35,
			Mode:             0,
		},
	}
	profile, _ := mood.Get("happy")

	scored, err := e.GenerateRecommendations([]Track{base, twin, outlier}, nil, profile, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("GenerateRecommendations failed: %v", err)
	}

	byID := make(map[string]ScoredTrack, len(scored))
	for _, st := range scored {
		byID[st.Track.ID] = st
	}
	if d := byID["base"].DiversityScore; d != 1.0 {
		t.Errorf("first candidate diversity = %f, want 1.0", d)
	}
	if d := byID["twin"].DiversityScore; !near(d, 0, 1e-9) {
		t.Errorf("identical twin diversity = %f, want 0", d)
	}
	if d := byID["outlier"].DiversityScore; d < 0.3 {
		t.Errorf("outlier diversity = %f, want > 0.3", d)
	}
}

func TestGenerateRecommendationsInvalidConfig(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	profile, _ := mood.Get("happy")

	bad := DefaultConfig()
	bad.GaussianSigma = -1
	if _, err := e.GenerateRecommendations(nil, nil, profile, nil, bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRegisterRerankerApplied(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 6)}})
	e.RegisterReranker(takeFirst{})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "energetic"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(resp.Tracks) != 1 {
		t.Errorf("len(Tracks) = %d, want 1 after reranker", len(resp.Tracks))
	}
}

func TestGetMetrics(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 4)}})

	req := Request{UserID: "u1", Mood: "happy"}
	for i := 0; i < 3; i++ {
		if _, err := e.Recommend(context.Background(), req); err != nil {
			t.Fatalf("Recommend %d failed: %v", i, err)
		}
	}

	m := e.GetMetrics()
	if m.RequestCount != 3 {
		t.Errorf("RequestCount = %d, want 3", m.RequestCount)
	}
	if m.CacheMisses != 1 {
		t.Errorf("CacheMisses = %d, want 1", m.CacheMisses)
	}
	if m.CacheHits != 2 {
		t.Errorf("CacheHits = %d, want 2", m.CacheHits)
	}
	if m.ColdStarts != 1 {
		t.Errorf("ColdStarts = %d, want 1", m.ColdStarts)
	}
	if m.CandidatesScored != 4 {
		t.Errorf("CandidatesScored = %d, want 4", m.CandidatesScored)
	}
}

func TestSweepCache(t *testing.T) {
	clock := newFixedClock(testNoon)
	e := newTestEngine(t, nil, clock)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 4)}})

	if _, err := e.Recommend(context.Background(), Request{UserID: "u1", Mood: "happy"}); err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if removed := e.SweepCache(clock.Now()); removed != 0 {
		t.Errorf("fresh sweep removed %d, want 0", removed)
	}
	clock.Advance(11 * time.Minute)
	if removed := e.SweepCache(clock.Now()); removed != 1 {
		t.Errorf("expired sweep removed %d, want 1", removed)
	}
}

func TestRecommendConcurrent(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.SetProviders(Providers{Catalog: &mockCatalog{tracks: energeticCatalog(t, 10)}})

	const goroutines = 8
	const perGoroutine = 10

	var wg sync.WaitGroup
	errs := make(chan error, goroutines*perGoroutine)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				req := Request{
					UserID: fmt.Sprintf("user-%d", g),
					Mood:   mood.Names()[i%len(mood.Names())],
				}
				if _, err := e.Recommend(context.Background(), req); err != nil {
					errs <- err
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Recommend failed: %v", err)
	}
	if got := e.GetMetrics().RequestCount; got != goroutines*perGoroutine {
		t.Errorf("RequestCount = %d, want %d", got, goroutines*perGoroutine)
	}
}
