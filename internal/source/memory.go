// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package source

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/euphonia/internal/pattern"
	"github.com/tomtom215/euphonia/internal/recommend"
)

// MemoryCatalog is an in-memory catalog provider backed by a track
// list. It serves the same candidates to every user.
type MemoryCatalog struct {
	mu     sync.RWMutex
	tracks []recommend.Track
	byID   map[string]int
}

// NewMemoryCatalog creates a catalog from the given tracks.
func NewMemoryCatalog(tracks []recommend.Track) *MemoryCatalog {
	c := &MemoryCatalog{}
	c.SetTracks(tracks)
	return c
}

// NewMemoryCatalogFromJSON creates a catalog by decoding a JSON track
// array from r.
func NewMemoryCatalogFromJSON(r io.Reader) (*MemoryCatalog, error) {
	var tracks []recommend.Track
	if err := json.NewDecoder(r).Decode(&tracks); err != nil {
		return nil, fmt.Errorf("parse track catalog: %w", err)
	}
	return NewMemoryCatalog(tracks), nil
}

// SetTracks replaces the catalog contents.
func (c *MemoryCatalog) SetTracks(tracks []recommend.Track) {
	byID := make(map[string]int, len(tracks))
	for i := range tracks {
		byID[tracks[i].ID] = i
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracks = tracks
	c.byID = byID
}

// Candidates returns a copy of the catalog so callers cannot mutate
// the shared track list.
func (c *MemoryCatalog) Candidates(_ context.Context, _ string) ([]recommend.Track, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]recommend.Track, len(c.tracks))
	copy(out, c.tracks)
	return out, nil
}

// Track returns the catalog entry with the given ID.
func (c *MemoryCatalog) Track(id string) (recommend.Track, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return recommend.Track{}, false
	}
	return c.tracks[i], true
}

// Len returns the number of tracks in the catalog.
func (c *MemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tracks)
}

// MemoryPatternStore holds aggregated listening patterns per user.
type MemoryPatternStore struct {
	mu       sync.RWMutex
	patterns map[string]pattern.UserPattern
}

// NewMemoryPatternStore creates an empty pattern store.
func NewMemoryPatternStore() *MemoryPatternStore {
	return &MemoryPatternStore{
		patterns: make(map[string]pattern.UserPattern),
	}
}

// Pattern returns a copy of the user's pattern, or nil when none has
// been computed yet.
func (s *MemoryPatternStore) Pattern(_ context.Context, userID string) (*pattern.UserPattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patterns[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Set stores the user's pattern, replacing any previous value.
func (s *MemoryPatternStore) Set(userID string, p pattern.UserPattern) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns[userID] = p
}

// Delete removes the user's pattern.
func (s *MemoryPatternStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.patterns, userID)
}

// UserIDs returns the users with stored patterns in sorted order.
func (s *MemoryPatternStore) UserIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.patterns))
	for id := range s.patterns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MemoryRecentPlays serves fixed recent-track lists per user, for
// hosts that already know play order without timestamps.
type MemoryRecentPlays struct {
	mu     sync.RWMutex
	recent map[string][]string
}

// NewMemoryRecentPlays creates an empty recent-plays provider.
func NewMemoryRecentPlays() *MemoryRecentPlays {
	return &MemoryRecentPlays{
		recent: make(map[string][]string),
	}
}

// Set replaces the user's recent track IDs, most recent first.
func (m *MemoryRecentPlays) Set(userID string, trackIDs []string) {
	ids := make([]string, len(trackIDs))
	copy(ids, trackIDs)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent[userID] = ids
}

// RecentTrackIDs returns up to limit of the user's recent track IDs.
func (m *MemoryRecentPlays) RecentTrackIDs(_ context.Context, userID string, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.recent[userID]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// playEvent is one recorded play, kept newest first.
type playEvent struct {
	trackID  string
	playedAt time.Time
}

// MemoryHistory records plays per user with a bounded history.
type MemoryHistory struct {
	mu         sync.RWMutex
	plays      map[string][]playEvent
	maxPerUser int
}

// NewMemoryHistory creates a history keeping up to maxPerUser plays
// for each user. Non-positive maxPerUser keeps everything.
func NewMemoryHistory(maxPerUser int) *MemoryHistory {
	return &MemoryHistory{
		plays:      make(map[string][]playEvent),
		maxPerUser: maxPerUser,
	}
}

// Record prepends a play for the user, trimming the oldest entries
// beyond the per-user bound.
func (h *MemoryHistory) Record(userID, trackID string, playedAt time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	events := h.plays[userID]
	events = append([]playEvent{{trackID: trackID, playedAt: playedAt}}, events...)
	if h.maxPerUser > 0 && len(events) > h.maxPerUser {
		events = events[:h.maxPerUser]
	}
	h.plays[userID] = events
}

// RecentTrackIDs returns up to limit track IDs ordered from most to
// least recent.
func (h *MemoryHistory) RecentTrackIDs(_ context.Context, userID string, limit int) ([]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	events := h.plays[userID]
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.trackID
	}
	return ids, nil
}

// UserIDs returns the users with recorded plays in sorted order.
func (h *MemoryHistory) UserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.plays))
	for id := range h.plays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PlayCount returns how many plays are recorded for the user.
func (h *MemoryHistory) PlayCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.plays[userID])
}

// Interface checks.
var (
	_ recommend.CatalogProvider     = (*MemoryCatalog)(nil)
	_ recommend.PatternProvider     = (*MemoryPatternStore)(nil)
	_ recommend.RecentPlaysProvider = (*MemoryHistory)(nil)
	_ recommend.RecentPlaysProvider = (*MemoryRecentPlays)(nil)
)
