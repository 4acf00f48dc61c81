// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package pattern

import (
	"math"
	"time"

	"github.com/tomtom215/euphonia/internal/feature"
)

// Aggregate derives a UserPattern from a window of history descriptors,
// typically the user's most recent plays. Statistics use the population
// standard deviation (dividing by n, not n-1) since the window is the
// whole population being summarized, not a sample of it.
//
// An empty window yields the zero aggregate with only LastUpdated set;
// it is never reliable.
func Aggregate(descriptors []feature.AudioDescriptor, now time.Time) UserPattern {
	if len(descriptors) == 0 {
		return UserPattern{LastUpdated: now}
	}

	var energy, valence, danceability, tempo, acousticness, instrumentalness, speechiness runningStat
	for _, d := range descriptors {
		energy.add(d.Energy)
		valence.add(d.Valence)
		danceability.add(d.Danceability)
		tempo.add(d.TempoBPM)
		acousticness.add(d.Acousticness)
		instrumentalness.add(d.Instrumentalness)
		speechiness.add(d.Speechiness)
	}

	return UserPattern{
		EnergyMean:             energy.mean(),
		EnergyStdDev:           energy.stdDev(),
		ValenceMean:            valence.mean(),
		ValenceStdDev:          valence.stdDev(),
		DanceabilityMean:       danceability.mean(),
		DanceabilityStdDev:     danceability.stdDev(),
		TempoMean:              tempo.mean(),
		TempoStdDev:            tempo.stdDev(),
		AcousticnessMean:       acousticness.mean(),
		AcousticnessStdDev:     acousticness.stdDev(),
		InstrumentalnessMean:   instrumentalness.mean(),
		InstrumentalnessStdDev: instrumentalness.stdDev(),
		SpeechinessMean:        speechiness.mean(),
		SpeechinessStdDev:      speechiness.stdDev(),
		TotalTracksAnalyzed:    len(descriptors),
		LastUpdated:            now,
	}
}

// runningStat accumulates first and second moments for one feature.
type runningStat struct {
	sum   float64
	sumSq float64
	n     int
}

func (s *runningStat) add(x float64) {
	s.sum += x
	s.sumSq += x * x
	s.n++
}

func (s *runningStat) mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sum / float64(s.n)
}

func (s *runningStat) stdDev() float64 {
	if s.n == 0 {
		return 0
	}
	m := s.mean()
	variance := s.sumSq/float64(s.n) - m*m
	// Floating point can push a zero variance a hair negative.
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
