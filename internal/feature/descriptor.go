// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package feature

import "math"

// Tempo and loudness bands used to map raw values onto [0, 1] for
// similarity comparisons. Values outside the band clamp to the edges.
const (
	tempoFloorBPM = 50.0
	tempoRangeBPM = 150.0

	loudnessFloorDB = -60.0
	loudnessRangeDB = 60.0
)

// Weighted-Euclidean feature weights. The table sums to 1.0 so the
// weighted sum of squared differences stays within [0, 1] and the
// similarity result needs no rescaling.
const (
	weightEnergy           = 0.20
	weightValence          = 0.20
	weightDanceability     = 0.15
	weightTempo            = 0.12
	weightAcousticness     = 0.10
	weightInstrumentalness = 0.08
	weightLiveness         = 0.05
	weightSpeechiness      = 0.05
	weightLoudness         = 0.03
	weightMode             = 0.02
)

// AudioDescriptor is one track's numeric fingerprint. All fields are set
// at construction and never mutated; descriptors are plain values,
// compared by value and passed by value. Range upkeep is the construction
// layer's contract: the descriptor does not re-validate or clamp stored
// fields, only the derived accessors clamp.
type AudioDescriptor struct {
	// Energy is the perceptual intensity measure (0-1).
	Energy float64 `json:"energy"`

	// Valence is the musical positiveness measure (0-1).
	Valence float64 `json:"valence"`

	// Danceability describes rhythmic suitability for dancing (0-1).
	Danceability float64 `json:"danceability"`

	// TempoBPM is the estimated tempo in beats per minute (~50-200).
	TempoBPM float64 `json:"tempo_bpm"`

	// Acousticness is the confidence the track is acoustic (0-1).
	Acousticness float64 `json:"acousticness"`

	// Instrumentalness predicts absence of vocals (0-1).
	Instrumentalness float64 `json:"instrumentalness"`

	// Liveness detects audience presence in the recording (0-1).
	Liveness float64 `json:"liveness"`

	// Speechiness detects spoken-word content (0-1).
	Speechiness float64 `json:"speechiness"`

	// LoudnessDB is the overall loudness in decibels (-60-0).
	LoudnessDB float64 `json:"loudness_db"`

	// Key is the estimated pitch class (0-11, -1 when undetected).
	Key int `json:"key"`

	// Mode is the modality: 1 major, 0 minor.
	Mode int `json:"mode"`

	// TimeSignature is the estimated meter (3-7 beats per bar).
	TimeSignature int `json:"time_signature"`
}

// NormalizedTempo maps TempoBPM onto [0, 1] across the 50-200 BPM band.
func (d AudioDescriptor) NormalizedTempo() float64 {
	return clamp01((d.TempoBPM - tempoFloorBPM) / tempoRangeBPM)
}

// NormalizedLoudness maps LoudnessDB onto [0, 1] across the -60-0 dB band.
func (d AudioDescriptor) NormalizedLoudness() float64 {
	return clamp01((d.LoudnessDB - loudnessFloorDB) / loudnessRangeDB)
}

// SimilarityTo computes the weighted-Euclidean similarity between two
// descriptors. Tempo and loudness are compared in normalized space, mode
// contributes a 0/1 mismatch indicator, every other feature contributes
// its raw squared difference:
//
//	sim(a, b) = clamp(1 - sqrt(Σ_f w_f · diff_f²), 0, 1)
//
// The function is pure, commutative, and returns 1 for identical
// descriptors.
//
//nolint:gocritic // hugeParam: descriptors passed by value for immutability
func (d AudioDescriptor) SimilarityTo(other AudioDescriptor) float64 {
	var sum float64

	sum += weightEnergy * square(d.Energy-other.Energy)
	sum += weightValence * square(d.Valence-other.Valence)
	sum += weightDanceability * square(d.Danceability-other.Danceability)
	sum += weightTempo * square(d.NormalizedTempo()-other.NormalizedTempo())
	sum += weightAcousticness * square(d.Acousticness-other.Acousticness)
	sum += weightInstrumentalness * square(d.Instrumentalness-other.Instrumentalness)
	sum += weightLiveness * square(d.Liveness-other.Liveness)
	sum += weightSpeechiness * square(d.Speechiness-other.Speechiness)
	sum += weightLoudness * square(d.NormalizedLoudness()-other.NormalizedLoudness())

	// Mode is categorical: identical modes contribute nothing, a
	// major/minor mismatch contributes the full weight.
	if d.Mode != other.Mode {
		sum += weightMode
	}

	return clamp01(1.0 - math.Sqrt(sum))
}

// CosineSimilarityTo computes cosine similarity over the nine continuous
// feature dimensions (energy, valence, danceability, normalized tempo,
// acousticness, instrumentalness, liveness, speechiness, normalized
// loudness). Returns 0 when either vector has zero magnitude; since all
// dimensions are non-negative the result stays within [0, 1].
//
//nolint:gocritic // hugeParam: descriptors passed by value for immutability
func (d AudioDescriptor) CosineSimilarityTo(other AudioDescriptor) float64 {
	a := d.vector()
	b := other.vector()

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// vector returns the continuous feature dimensions used by cosine
// comparisons, with tempo and loudness in normalized space.
func (d AudioDescriptor) vector() [9]float64 {
	return [9]float64{
		d.Energy,
		d.Valence,
		d.Danceability,
		d.NormalizedTempo(),
		d.Acousticness,
		d.Instrumentalness,
		d.Liveness,
		d.Speechiness,
		d.NormalizedLoudness(),
	}
}

func square(x float64) float64 {
	return x * x
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
