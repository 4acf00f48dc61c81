// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package recommend

import "time"

// Clock supplies the current time. Injecting a Clock makes the
// time-of-day context score and cache expiry deterministic in tests.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }
