// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package pattern

import "time"

// MinReliableTracks is the minimum number of analyzed tracks before a
// pattern is trusted for personalized scoring.
const MinReliableTracks = 10

// UserPattern is the statistical summary of a user's historical
// listening: per-feature mean and standard deviation plus sample count.
// A pattern is a per-call immutable value. Absence (new user, no
// history) is expressed as a nil *UserPattern, never as a zero-filled
// value; a zero pattern is merely unreliable, not absent.
type UserPattern struct {
	// EnergyMean is the average energy across analyzed tracks (0-1).
	EnergyMean float64 `json:"energy_mean"`

	// EnergyStdDev is the energy standard deviation.
	EnergyStdDev float64 `json:"energy_std_dev"`

	// ValenceMean is the average valence (0-1).
	ValenceMean float64 `json:"valence_mean"`

	// ValenceStdDev is the valence standard deviation.
	ValenceStdDev float64 `json:"valence_std_dev"`

	// DanceabilityMean is the average danceability (0-1).
	DanceabilityMean float64 `json:"danceability_mean"`

	// DanceabilityStdDev is the danceability standard deviation.
	DanceabilityStdDev float64 `json:"danceability_std_dev"`

	// TempoMean is the average tempo in BPM. Kept in BPM space; the
	// scorer normalizes both sides at comparison time.
	TempoMean float64 `json:"tempo_mean"`

	// TempoStdDev is the tempo standard deviation in BPM.
	TempoStdDev float64 `json:"tempo_std_dev"`

	// AcousticnessMean is the average acousticness (0-1).
	AcousticnessMean float64 `json:"acousticness_mean"`

	// AcousticnessStdDev is the acousticness standard deviation.
	AcousticnessStdDev float64 `json:"acousticness_std_dev"`

	// InstrumentalnessMean is the average instrumentalness (0-1).
	InstrumentalnessMean float64 `json:"instrumentalness_mean"`

	// InstrumentalnessStdDev is the instrumentalness standard deviation.
	InstrumentalnessStdDev float64 `json:"instrumentalness_std_dev"`

	// SpeechinessMean is the average speechiness (0-1).
	SpeechinessMean float64 `json:"speechiness_mean"`

	// SpeechinessStdDev is the speechiness standard deviation.
	SpeechinessStdDev float64 `json:"speechiness_std_dev"`

	// TotalTracksAnalyzed is the sample size behind the statistics.
	TotalTracksAnalyzed int `json:"total_tracks_analyzed"`

	// LastUpdated is when the pattern was computed.
	LastUpdated time.Time `json:"last_updated"`
}

// IsReliable reports whether the pattern rests on enough samples to
// drive personalized scoring. Unreliable patterns score with the same
// neutral fallback as absent ones.
func (p UserPattern) IsReliable() bool {
	return p.TotalTracksAnalyzed >= MinReliableTracks
}

// Strength expresses how concentrated the user's taste is: 1 for a user
// who always listens to the same kind of track, approaching 0 as the
// core feature deviations spread out.
func (p UserPattern) Strength() float64 {
	spread := (p.EnergyStdDev + p.ValenceStdDev + p.DanceabilityStdDev) / 3.0
	s := 1.0 - spread
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}
