// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

// Package refresh runs the engine's background maintenance under
// suture supervision.
//
// Service wraps any periodic task with a ticker loop, per-run timeout,
// and optional run-on-start. Two wirings are provided:
//
//   - NewPatternRefreshService recomputes listening patterns from
//     recorded plays (source.PatternRefresher) and records run
//     counters and durations.
//   - NewCacheSweepService evicts expired response cache entries
//     through the engine's SweepCache.
//
// Supervisor is the suture root the services run under, with
// structured-log event hooks via sutureslog. Typical wiring:
//
//	sup := refresh.NewSupervisor(slogLogger, refresh.DefaultSupervisorConfig())
//	sup.Add(refresh.NewPatternRefreshService(refresher, refresh.Config{
//		Interval:   15 * time.Minute,
//		RunOnStart: true,
//	}, logger))
//	sup.Add(refresh.NewCacheSweepService(engine, refresh.Config{
//		Interval: time.Minute,
//	}, logger))
//	errCh := sup.ServeBackground(ctx)
//
// A failed run is logged and retried on the next tick; only context
// cancellation stops a service.
package refresh
