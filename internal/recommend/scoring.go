// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package recommend

import (
	"math"

	"github.com/tomtom215/euphonia/internal/feature"
	"github.com/tomtom215/euphonia/internal/mood"
	"github.com/tomtom215/euphonia/internal/pattern"
)

// Per-dimension weights for the listening-pattern score. The weights
// sum to 1.0 so the blended score stays in [0, 1].
const (
	patternWeightEnergy       = 0.25
	patternWeightValence      = 0.25
	patternWeightDanceability = 0.20
	patternWeightTempo        = 0.15
	patternWeightAcousticness = 0.15
)

const (
	// neutralScore is the pattern score assigned when no reliable
	// listening pattern is available.
	neutralScore = 0.5

	// tempoAffinityRangeBPM is the BPM distance at which the mood
	// tempo affinity decays to zero.
	tempoAffinityRangeBPM = 50.0

	// moodCosineWeight and moodTempoWeight blend directional
	// similarity with tempo affinity in the mood score.
	moodCosineWeight = 0.7
	moodTempoWeight  = 0.3

	// popularityBoostBase and popularityBoostSpan map a 0-100
	// popularity rank onto a 0.95 to 1.05 multiplier.
	popularityBoostBase = 0.95
	popularityBoostSpan = 0.10

	// dayPartFitBase and dayPartFitSlope map the mean distance from
	// the day-part target onto a 0.9 to 1.1 multiplier.
	dayPartFitBase  = 1.1
	dayPartFitSlope = 0.2
)

// gaussian evaluates exp(-(x-mean)^2 / (2*sigma^2)), peaking at 1.0
// when x equals mean.
func gaussian(x, mean, sigma float64) float64 {
	diff := x - mean
	return math.Exp(-(diff * diff) / (2 * sigma * sigma))
}

// patternScore measures how closely a descriptor matches the user's
// listening pattern. Each dimension contributes a Gaussian centered
// on the pattern mean. Unreliable or missing patterns score a neutral
// 0.5 so the other components decide the ranking.
//
//nolint:gocritic // hugeParam: desc passed by value for immutability
func patternScore(desc feature.AudioDescriptor, pat *pattern.UserPattern, sigma float64) float64 {
	if pat == nil || !pat.IsReliable() {
		return neutralScore
	}
	tempoMean := feature.AudioDescriptor{TempoBPM: pat.TempoMean}.NormalizedTempo()
	return patternWeightEnergy*gaussian(desc.Energy, pat.EnergyMean, sigma) +
		patternWeightValence*gaussian(desc.Valence, pat.ValenceMean, sigma) +
		patternWeightDanceability*gaussian(desc.Danceability, pat.DanceabilityMean, sigma) +
		patternWeightTempo*gaussian(desc.NormalizedTempo(), tempoMean, sigma) +
		patternWeightAcousticness*gaussian(desc.Acousticness, pat.AcousticnessMean, sigma)
}

// moodScore measures how well a descriptor fits a mood profile,
// blending cosine similarity to the profile's target descriptor with
// a linear tempo affinity that reaches zero at 50 BPM distance.
//
//nolint:gocritic // hugeParam: desc passed by value for immutability
func moodScore(desc feature.AudioDescriptor, profile mood.Profile) float64 {
	cos := desc.CosineSimilarityTo(profile.ToDescriptor())
	affinity := 1.0 - math.Abs(desc.TempoBPM-profile.TargetTempoBPM)/tempoAffinityRangeBPM
	if affinity < 0 {
		affinity = 0
	}
	return moodCosineWeight*cos + moodTempoWeight*affinity
}

// maxSimilarityTo returns the highest similarity between desc and any
// of the given descriptors, or 0 when the slice is empty.
//
//nolint:gocritic // hugeParam: desc passed by value for immutability
func maxSimilarityTo(desc feature.AudioDescriptor, others []feature.AudioDescriptor) float64 {
	maxSim := 0.0
	for i := range others {
		if sim := desc.SimilarityTo(others[i]); sim > maxSim {
			maxSim = sim
		}
	}
	return maxSim
}

// dayPartTarget holds the preferred energy and valence for a span of
// hours. Hours outside every listed span use nightTarget.
type dayPartTarget struct {
	fromHour int
	toHour   int
	energy   float64
	valence  float64
}

var dayPartTargets = []dayPartTarget{
	{fromHour: 6, toHour: 10, energy: 0.60, valence: 0.60},
	{fromHour: 10, toHour: 14, energy: 0.70, valence: 0.65},
	{fromHour: 14, toHour: 18, energy: 0.65, valence: 0.60},
	{fromHour: 18, toHour: 22, energy: 0.55, valence: 0.55},
}

var nightTarget = dayPartTarget{fromHour: 22, toHour: 6, energy: 0.35, valence: 0.45}

// targetForHour returns the day-part target covering the given hour.
func targetForHour(hour int) dayPartTarget {
	for _, t := range dayPartTargets {
		if hour >= t.fromHour && hour < t.toHour {
			return t
		}
	}
	return nightTarget
}

// dayPartFit scores how well a descriptor suits the hour of day,
// ranging from 0.9 at maximum distance to 1.1 at a perfect match.
//
//nolint:gocritic // hugeParam: desc passed by value for immutability
func dayPartFit(desc feature.AudioDescriptor, hour int) float64 {
	t := targetForHour(hour)
	dist := (math.Abs(desc.Energy-t.energy) + math.Abs(desc.Valence-t.valence)) / 2
	return dayPartFitBase - dayPartFitSlope*dist
}

// recentPosition returns the 0-based position of trackID within the
// first window entries of recentIDs, or -1 when absent. Position 0 is
// the most recent play.
func recentPosition(recentIDs []string, trackID string, window int) int {
	for i, id := range recentIDs {
		if i >= window {
			return -1
		}
		if id == trackID {
			return i
		}
	}
	return -1
}

// contextScore blends the recency penalty, day-part fit, and optional
// popularity boost into a single multiplier clamped to [0, 1].
//
//nolint:gocritic // hugeParam: desc passed by value for immutability
func contextScore(desc feature.AudioDescriptor, trackID string, popularity *int, recentIDs []string, cfg Config, hour int) float64 {
	score := 1.0
	if pos := recentPosition(recentIDs, trackID, cfg.RecentTrackWindow); pos >= 0 {
		freshness := 1.0 - float64(pos)/float64(cfg.RecentTrackWindow)
		score *= 1.0 - cfg.RecentTrackPenalty*freshness
	}
	score *= dayPartFit(desc, hour)
	if popularity != nil {
		score *= popularityBoostBase + float64(*popularity)/100.0*popularityBoostSpan
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
