// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package mood

import (
	"strings"

	"github.com/tomtom215/euphonia/internal/feature"
)

// Synthetic descriptor defaults for dimensions a profile does not target.
// Chosen as studio-recording norms so untargeted dimensions neither
// attract nor repel candidates during cosine comparison.
const (
	defaultAcousticness     = 0.5
	defaultInstrumentalness = 0.5
	defaultLiveness         = 0.15
	defaultSpeechiness      = 0.05
	defaultLoudnessDB       = -10.0
)

// Profile is a named listening intent with target descriptor values.
// Profiles are read-only table entries; the zero Profile is not valid.
type Profile struct {
	// Name is the canonical lower-case identifier used for lookup.
	Name string `json:"name"`

	// DisplayName is the human-readable label.
	DisplayName string `json:"display_name"`

	// TargetEnergy is the desired energy level (0-1).
	TargetEnergy float64 `json:"target_energy"`

	// TargetValence is the desired positiveness (0-1).
	TargetValence float64 `json:"target_valence"`

	// TargetDanceability is the desired danceability (0-1).
	TargetDanceability float64 `json:"target_danceability"`

	// TargetTempoBPM is the desired tempo in beats per minute.
	TargetTempoBPM float64 `json:"target_tempo_bpm"`

	// TargetAcousticness optionally pins the acousticness dimension.
	TargetAcousticness *float64 `json:"target_acousticness,omitempty"`

	// TargetInstrumentalness optionally pins the instrumentalness dimension.
	TargetInstrumentalness *float64 `json:"target_instrumentalness,omitempty"`

	// SeedGenres are informational genre tags for this mood. The scorer
	// does not consume them; they exist for host-side seeding and display.
	SeedGenres []string `json:"seed_genres,omitempty"`
}

// ToDescriptor converts the profile into a synthetic audio descriptor so
// candidates can be compared against the mood target with the regular
// similarity operations. Untargeted dimensions take the package defaults.
func (p Profile) ToDescriptor() feature.AudioDescriptor {
	acousticness := defaultAcousticness
	if p.TargetAcousticness != nil {
		acousticness = *p.TargetAcousticness
	}

	instrumentalness := defaultInstrumentalness
	if p.TargetInstrumentalness != nil {
		instrumentalness = *p.TargetInstrumentalness
	}

	return feature.AudioDescriptor{
		Energy:           p.TargetEnergy,
		Valence:          p.TargetValence,
		Danceability:     p.TargetDanceability,
		TempoBPM:         p.TargetTempoBPM,
		Acousticness:     acousticness,
		Instrumentalness: instrumentalness,
		Liveness:         defaultLiveness,
		Speechiness:      defaultSpeechiness,
		LoudnessDB:       defaultLoudnessDB,
		Key:              -1,
		Mode:             1,
		TimeSignature:    4,
	}
}

// profiles is the fixed mood table, built once at package initialization
// and never mutated afterwards.
var profiles = []Profile{
	{
		Name: "energetic", DisplayName: "Energetic",
		TargetEnergy: 0.90, TargetValence: 0.60, TargetDanceability: 0.90,
		TargetTempoBPM: 140,
		SeedGenres:     []string{"power-pop", "edm", "rock"},
	},
	{
		Name: "chill", DisplayName: "Chill",
		TargetEnergy: 0.40, TargetValence: 0.50, TargetDanceability: 0.40,
		TargetTempoBPM:     95,
		TargetAcousticness: floatPtr(0.60),
		SeedGenres:         []string{"chill", "lo-fi", "ambient"},
	},
	{
		Name: "happy", DisplayName: "Happy",
		TargetEnergy: 0.80, TargetValence: 0.90, TargetDanceability: 0.80,
		TargetTempoBPM: 120,
		SeedGenres:     []string{"pop", "happy", "dance"},
	},
	{
		Name: "sad", DisplayName: "Sad",
		TargetEnergy: 0.20, TargetValence: 0.30, TargetDanceability: 0.30,
		TargetTempoBPM:     80,
		TargetAcousticness: floatPtr(0.70),
		SeedGenres:         []string{"sad", "acoustic", "singer-songwriter"},
	},
	{
		Name: "focus", DisplayName: "Focus",
		TargetEnergy: 0.60, TargetValence: 0.40, TargetDanceability: 0.50,
		TargetTempoBPM:         110,
		TargetInstrumentalness: floatPtr(0.80),
		SeedGenres:             []string{"focus", "study", "minimal-techno"},
	},
	{
		Name: "workout", DisplayName: "Workout",
		TargetEnergy: 0.95, TargetValence: 0.70, TargetDanceability: 0.85,
		TargetTempoBPM: 150,
		SeedGenres:     []string{"work-out", "hip-hop", "edm"},
	},
	{
		Name: "party", DisplayName: "Party",
		TargetEnergy: 0.90, TargetValence: 0.70, TargetDanceability: 0.95,
		TargetTempoBPM: 125,
		SeedGenres:     []string{"party", "dance", "club"},
	},
	{
		Name: "romantic", DisplayName: "Romantic",
		TargetEnergy: 0.45, TargetValence: 0.65, TargetDanceability: 0.50,
		TargetTempoBPM:     100,
		TargetAcousticness: floatPtr(0.50),
		SeedGenres:         []string{"romance", "r-n-b", "soul"},
	},
	{
		Name: "sleep", DisplayName: "Sleep",
		TargetEnergy: 0.15, TargetValence: 0.35, TargetDanceability: 0.20,
		TargetTempoBPM:         70,
		TargetAcousticness:     floatPtr(0.80),
		TargetInstrumentalness: floatPtr(0.70),
		SeedGenres:             []string{"sleep", "ambient", "piano"},
	},
	{
		Name: "meditation", DisplayName: "Meditation",
		TargetEnergy: 0.10, TargetValence: 0.50, TargetDanceability: 0.15,
		TargetTempoBPM:         60,
		TargetAcousticness:     floatPtr(0.70),
		TargetInstrumentalness: floatPtr(0.90),
		SeedGenres:             []string{"meditation", "ambient", "new-age"},
	},
}

var profilesByName = indexProfiles(profiles)

func indexProfiles(entries []Profile) map[string]Profile {
	idx := make(map[string]Profile, len(entries))
	for _, p := range entries {
		idx[p.Name] = p
	}
	return idx
}

// Get looks up a profile by name, case-insensitively. The second return
// is false for unknown names; unknown moods are absence, not an error.
func Get(name string) (Profile, bool) {
	p, ok := profilesByName[strings.ToLower(name)]
	return p, ok
}

// All returns the mood table in stable declaration order. The returned
// slice is a copy; entries share the underlying seed-genre arrays and
// must be treated as read-only.
func All() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Names returns the canonical profile names in table order.
func Names() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

// Default returns the neutral fallback profile used when a mood name
// cannot be resolved: every target at the scale midpoint, tempo at the
// center of the comparison band. It is not part of the named table.
func Default() Profile {
	return Profile{
		Name:               "neutral",
		DisplayName:        "Neutral",
		TargetEnergy:       0.5,
		TargetValence:      0.5,
		TargetDanceability: 0.5,
		TargetTempoBPM:     115,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
