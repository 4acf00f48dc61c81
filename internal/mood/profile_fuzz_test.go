// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package mood

import (
	"strings"
	"testing"
)

// FuzzGet tests profile lookup with arbitrary mood names
func FuzzGet(f *testing.F) {
	// Seed corpus with canonical names, case variants, and junk
	f.Add("energetic")
	f.Add("CHILL")
	f.Add("Party")
	f.Add("")
	f.Add(" chill")
	f.Add("chill ")
	f.Add("sleep\x00")
	f.Add("méditation")
	f.Add("workout'; DROP TABLE moods; --")
	f.Add(strings.Repeat("m", 10000))

	f.Fuzz(func(t *testing.T, name string) {
		// Lookup should never panic, whatever the input
		p, ok := Get(name)

		lower := strings.ToLower(name)

		// Lookup is case-insensitive but does not trim: a hit means the
		// lowered input is exactly the canonical name
		if ok && p.Name != lower {
			t.Errorf("Get(%q) hit profile %q, want %q", name, p.Name, lower)
		}

		// Case variants of the same name must agree
		p2, ok2 := Get(lower)
		if ok != ok2 {
			t.Errorf("Get(%q) ok = %v but Get(%q) ok = %v", name, ok, lower, ok2)
		}
		if ok && p.Name != p2.Name {
			t.Errorf("Get(%q) = %q but Get(%q) = %q", name, p.Name, lower, p2.Name)
		}

		if !ok {
			return
		}

		// Every table entry carries targets a descriptor can hold
		if p.TargetEnergy < 0 || p.TargetEnergy > 1 {
			t.Errorf("profile %q TargetEnergy = %v, want [0,1]", p.Name, p.TargetEnergy)
		}
		if p.TargetValence < 0 || p.TargetValence > 1 {
			t.Errorf("profile %q TargetValence = %v, want [0,1]", p.Name, p.TargetValence)
		}
		if p.TargetDanceability < 0 || p.TargetDanceability > 1 {
			t.Errorf("profile %q TargetDanceability = %v, want [0,1]", p.Name, p.TargetDanceability)
		}
		if p.TargetTempoBPM <= 0 {
			t.Errorf("profile %q TargetTempoBPM = %v, want > 0", p.Name, p.TargetTempoBPM)
		}

		// The synthetic descriptor must be usable by the similarity math
		d := p.ToDescriptor()
		if sim := d.SimilarityTo(d); sim < 0.999 {
			t.Errorf("profile %q self-similarity = %v, want 1", p.Name, sim)
		}
	})
}
