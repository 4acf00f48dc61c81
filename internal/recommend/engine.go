// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/euphonia/internal/cache"
	"github.com/tomtom215/euphonia/internal/feature"
	"github.com/tomtom215/euphonia/internal/logging"
	"github.com/tomtom215/euphonia/internal/metrics"
	"github.com/tomtom215/euphonia/internal/mood"
	"github.com/tomtom215/euphonia/internal/pattern"
)

// ErrEmptyUserID is returned by Recommend for requests without a user.
var ErrEmptyUserID = errors.New("user ID must not be empty")

// Engine generates mood-aware track recommendations.
//
// An Engine is safe for concurrent use. Configuration is immutable
// after construction, counters are atomic, and the reranker registry
// is guarded by its own lock.
type Engine struct {
	config    *EngineConfig
	logger    zerolog.Logger
	clock     Clock
	providers Providers

	rerankMu  sync.RWMutex
	rerankers []Reranker

	cache *cache.Cache

	requestCount      atomic.Int64
	cacheHits         atomic.Int64
	cacheMisses       atomic.Int64
	coldStarts        atomic.Int64
	errorCount        atomic.Int64
	candidatesScored  atomic.Int64
	candidatesSkipped atomic.Int64
}

// NewEngine creates an engine with the given configuration. A nil
// config selects DefaultEngineConfig, a nil clock selects the system
// clock. Providers must be set with SetProviders before Recommend is
// called.
func NewEngine(cfg *EngineConfig, logger zerolog.Logger, clock Clock) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultEngineConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = systemClock{}
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		clock:  clock,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}
	return e, nil
}

// SetProviders wires the engine's data sources. Must be called before
// Recommend and is not safe to call concurrently with it.
func (e *Engine) SetProviders(p Providers) {
	e.providers = p
}

// RegisterReranker appends a reranker to the post-ranking pipeline.
// Rerankers run in registration order.
func (e *Engine) RegisterReranker(r Reranker) {
	e.rerankMu.Lock()
	defer e.rerankMu.Unlock()
	e.rerankers = append(e.rerankers, r)
	e.logger.Info().Str("reranker", r.Name()).Msg("Registered reranker")
}

// Recommend produces up to req.Limit tracks for the requested user
// and mood.
//
// The pipeline is: resolve the request defaults, check the response
// cache, fetch candidates, pattern, and recent plays, score and rank
// every candidate, apply the registered rerankers, and trim to the
// limit. Users without a reliable listening pattern take the
// cold-start path, which replaces the scoring configuration with
// ColdStartConfig.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := e.clock.Now()
	e.requestCount.Add(1)

	if req.UserID == "" {
		e.recordError("request")
		return nil, ErrEmptyUserID
	}

	req = e.prepareRequest(ctx, req)
	logger := e.requestLogger(ctx, req)

	scoring, err := e.scoringConfig(req)
	if err != nil {
		e.recordError("config")
		return nil, err
	}

	key := e.cacheKey(req)
	if resp, ok := e.checkCache(key, start); ok {
		e.cacheHits.Add(1)
		metrics.RecordCacheHit()
		resp.Metadata.RequestID = req.RequestID
		resp.Metadata.LatencyMS = e.clock.Now().Sub(start).Milliseconds()
		logger.Debug().Int("tracks", len(resp.Tracks)).Msg("Served recommendations from cache")
		return resp, nil
	}
	e.cacheMisses.Add(1)
	metrics.RecordCacheMiss()

	if e.providers.Catalog == nil {
		e.recordError("candidates")
		return nil, errors.New("catalog provider not set")
	}
	candidates, err := e.providers.Catalog.Candidates(ctx, req.UserID)
	if err != nil {
		e.recordError("candidates")
		return nil, fmt.Errorf("fetch candidates for user %s: %w", req.UserID, err)
	}

	profile := e.resolveProfile(req.Mood, logger)
	if len(candidates) == 0 {
		logger.Debug().Msg("No candidates available")
		return e.emptyResponse(req, profile.Name, start), nil
	}

	pat, err := e.fetchPattern(ctx, req.UserID)
	if err != nil {
		e.recordError("pattern")
		return nil, err
	}
	recents, err := e.fetchRecentPlays(ctx, req.UserID)
	if err != nil {
		e.recordError("recent_plays")
		return nil, err
	}

	coldStart := pat == nil || !pat.IsReliable()
	if coldStart {
		e.coldStarts.Add(1)
		scoring = ColdStartConfig()
		pat = nil
	}

	scored, err := e.GenerateRecommendations(candidates, pat, profile, recents, scoring)
	if err != nil {
		e.recordError("scoring")
		return nil, err
	}
	skipped := len(candidates) - len(scored)
	e.candidatesScored.Add(int64(len(scored)))
	e.candidatesSkipped.Add(int64(skipped))
	metrics.AddCandidatesScored(len(scored))
	metrics.AddCandidatesSkipped(skipped)

	ranked := e.applyRerankers(scored, scoring.DiversityThreshold)
	metrics.AddTracksFiltered(len(scored) - len(ranked))
	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	resp := &Response{
		Tracks:            ranked,
		TotalCandidates:   len(candidates),
		SkippedNoFeatures: skipped,
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			UserID:      req.UserID,
			Mood:        profile.Name,
			ColdStart:   coldStart,
			LatencyMS:   e.clock.Now().Sub(start).Milliseconds(),
			GeneratedAt: start,
		},
	}
	e.storeCache(key, resp, start)

	elapsed := e.clock.Now().Sub(start)
	metrics.RecordRecommendation(profile.Name, coldStart, elapsed.Seconds())
	logger.Debug().
		Int("tracks", len(resp.Tracks)).
		Int("candidates", len(candidates)).
		Int("skipped", skipped).
		Bool("cold_start", coldStart).
		Dur("elapsed", elapsed).
		Msg("Generated recommendations")
	return resp, nil
}

// GenerateRecommendations scores every candidate with a usable audio
// descriptor and returns them in descending total score order. Ties
// keep their catalog order. Candidates without features are skipped.
//
// The pattern may be nil, which scores the pattern component at a
// neutral 0.5 for every candidate.
func (e *Engine) GenerateRecommendations(candidates []Track, pat *pattern.UserPattern, profile mood.Profile, recentTrackIDs []string, cfg Config) ([]ScoredTrack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hour := e.clock.Now().Hour()
	scored := make([]ScoredTrack, 0, len(candidates))
	priors := make([]feature.AudioDescriptor, 0, len(candidates))
	for i := range candidates {
		t := candidates[i]
		if t.Features == nil {
			continue
		}
		desc := *t.Features

		pScore := patternScore(desc, pat, cfg.GaussianSigma)
		mScore := moodScore(desc, profile)
		dScore := 1.0 - maxSimilarityTo(desc, priors)
		cScore := contextScore(desc, t.ID, t.Popularity, recentTrackIDs, cfg, hour)

		scored = append(scored, ScoredTrack{
			Track:          t,
			TotalScore:     cfg.PatternWeight*pScore + cfg.MoodWeight*mScore + cfg.DiversityWeight*dScore + cfg.ContextWeight*cScore,
			PatternScore:   pScore,
			MoodScore:      mScore,
			DiversityScore: dScore,
			ContextScore:   cScore,
		})
		priors = append(priors, desc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})
	return scored, nil
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:      e.requestCount.Load(),
		CacheHits:         e.cacheHits.Load(),
		CacheMisses:       e.cacheMisses.Load(),
		ColdStarts:        e.coldStarts.Load(),
		ErrorCount:        e.errorCount.Load(),
		CandidatesScored:  e.candidatesScored.Load(),
		CandidatesSkipped: e.candidatesSkipped.Load(),
	}
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *EngineConfig {
	return e.config.Clone()
}

// CacheStats returns response cache statistics, or zero stats when
// caching is disabled.
func (e *Engine) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.GetStats()
}

// SweepCache removes expired responses and reports how many were
// removed. The refresh service calls this on its maintenance tick.
func (e *Engine) SweepCache(now time.Time) int {
	if e.cache == nil {
		return 0
	}
	return e.cache.Sweep(now)
}

// prepareRequest fills in the limit and request ID defaults and
// normalizes the mood name. An embedding caller may pass its own
// request ID through the context; it is used before generating one.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(ctx context.Context, req Request) Request {
	if req.Limit <= 0 {
		req.Limit = e.config.DefaultLimit
	}
	if req.Limit > e.config.MaxLimit {
		req.Limit = e.config.MaxLimit
	}
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	req.Mood = strings.ToLower(strings.TrimSpace(req.Mood))
	return req
}

// requestLogger returns a logger carrying the request correlation
// fields, including the caller's correlation ID when the context has
// one.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) requestLogger(ctx context.Context, req Request) zerolog.Logger {
	logCtx := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Str("mood", req.Mood)
	if correlationID := logging.CorrelationIDFromContext(ctx); correlationID != "" {
		logCtx = logCtx.Str("correlation_id", correlationID)
	}
	return logCtx.Logger()
}

// scoringConfig selects the per-request scoring configuration,
// validating any caller override.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) scoringConfig(req Request) (Config, error) {
	if req.Config == nil {
		return e.config.Scoring, nil
	}
	if err := req.Config.Validate(); err != nil {
		return Config{}, fmt.Errorf("request config: %w", err)
	}
	return *req.Config, nil
}

// resolveProfile looks up the mood profile, falling back to the
// neutral profile for unknown names.
func (e *Engine) resolveProfile(name string, logger zerolog.Logger) mood.Profile {
	if profile, ok := mood.Get(name); ok {
		return profile
	}
	logger.Warn().Str("mood", name).Msg("Unknown mood requested, using neutral profile")
	return mood.Default()
}

// fetchPattern loads the user's listening pattern. A nil provider or
// an unknown user yields a nil pattern, not an error.
func (e *Engine) fetchPattern(ctx context.Context, userID string) (*pattern.UserPattern, error) {
	if e.providers.Patterns == nil {
		return nil, nil
	}
	pat, err := e.providers.Patterns.Pattern(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch listening pattern for user %s: %w", userID, err)
	}
	return pat, nil
}

// fetchRecentPlays loads the user's recent play history up to the
// configured window.
func (e *Engine) fetchRecentPlays(ctx context.Context, userID string) ([]string, error) {
	if e.providers.RecentPlays == nil {
		return nil, nil
	}
	ids, err := e.providers.RecentPlays.RecentTrackIDs(ctx, userID, e.config.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("fetch recent plays for user %s: %w", userID, err)
	}
	return ids, nil
}

// applyRerankers runs the registered rerankers in order under a
// snapshot of the registry.
func (e *Engine) applyRerankers(tracks []ScoredTrack, threshold float64) []ScoredTrack {
	e.rerankMu.RLock()
	rerankers := make([]Reranker, len(e.rerankers))
	copy(rerankers, e.rerankers)
	e.rerankMu.RUnlock()

	for _, r := range rerankers {
		tracks = r.Rerank(tracks, threshold)
	}
	return tracks
}

// cacheKey derives the response cache key from the fields that change
// the response content.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheKey(req Request) string {
	return cache.GenerateKey("recommend", struct {
		UserID string  `json:"user_id"`
		Mood   string  `json:"mood"`
		Limit  int     `json:"limit"`
		Config *Config `json:"config,omitempty"`
	}{req.UserID, req.Mood, req.Limit, req.Config})
}

// checkCache returns a copy of the cached response for the key, if
// caching is enabled and the entry is still fresh.
func (e *Engine) checkCache(key string, now time.Time) (*Response, bool) {
	if e.cache == nil {
		return nil, false
	}
	val, ok := e.cache.Get(key, now)
	if !ok {
		return nil, false
	}
	cached, ok := val.(*Response)
	if !ok {
		return nil, false
	}
	return copyCachedResponse(cached), true
}

// copyCachedResponse clones a cached response so callers cannot
// mutate the cached copy through the returned slice.
func copyCachedResponse(cached *Response) *Response {
	resp := *cached
	resp.Tracks = make([]ScoredTrack, len(cached.Tracks))
	copy(resp.Tracks, cached.Tracks)
	resp.Metadata.CacheHit = true
	return &resp
}

// storeCache stores a copy of the response under the key.
func (e *Engine) storeCache(key string, resp *Response, now time.Time) {
	if e.cache == nil {
		return
	}
	stored := *resp
	stored.Tracks = make([]ScoredTrack, len(resp.Tracks))
	copy(stored.Tracks, resp.Tracks)
	e.cache.Set(key, &stored, now)
}

// emptyResponse builds the response for a user with no candidates.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) emptyResponse(req Request, moodName string, start time.Time) *Response {
	return &Response{
		Tracks: []ScoredTrack{},
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			UserID:      req.UserID,
			Mood:        moodName,
			LatencyMS:   e.clock.Now().Sub(start).Milliseconds(),
			GeneratedAt: start,
		},
	}
}

// recordError bumps the engine and exported error counters.
func (e *Engine) recordError(stage string) {
	e.errorCount.Add(1)
	metrics.RecordError(stage)
}
