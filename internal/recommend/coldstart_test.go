// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package recommend

import (
	"testing"

	"github.com/tomtom215/euphonia/internal/mood"
)

func TestColdStartGenerateRanksByMood(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	s := NewColdStartStrategy(e)

	profile, ok := mood.Get("party")
	if !ok {
		t.Fatal("party profile missing")
	}
	candidates := []Track{
		makeTrack("far", 0.05, 0.05, 0.1, profile.TargetTempoBPM-60),
		makeTrack("match", profile.TargetEnergy, profile.TargetValence, profile.TargetDanceability, profile.TargetTempoBPM),
	}

	ranked, err := s.Generate(candidates, profile, nil, 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	if ranked[0].Track.ID != "match" {
		t.Errorf("top track = %s, want mood match", ranked[0].Track.ID)
	}
	for _, st := range ranked {
		if st.PatternScore != 0.5 {
			t.Errorf("track %s PatternScore = %f, want neutral 0.5", st.Track.ID, st.PatternScore)
		}
	}
}

func TestColdStartGenerateLimit(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	s := NewColdStartStrategy(e)
	profile, _ := mood.Get("happy")
	candidates := energeticCatalog(t, 14)

	ranked, err := s.Generate(candidates, profile, nil, 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(ranked) != 3 {
		t.Errorf("len(ranked) = %d, want 3", len(ranked))
	}

	// Non-positive limit selects the engine default.
	ranked, err = s.Generate(candidates, profile, nil, 0)
	if err != nil {
		t.Fatalf("Generate with zero limit failed: %v", err)
	}
	if len(ranked) != 10 {
		t.Errorf("len(ranked) = %d, want engine default 10", len(ranked))
	}
}

func TestColdStartGenerateAppliesRerankers(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.RegisterReranker(takeFirst{})
	s := NewColdStartStrategy(e)
	profile, _ := mood.Get("chill")

	ranked, err := s.Generate(energeticCatalog(t, 6), profile, nil, 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(ranked) != 1 {
		t.Errorf("len(ranked) = %d, want 1 after reranker", len(ranked))
	}
}
