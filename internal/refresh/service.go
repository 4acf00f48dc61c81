// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package refresh

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/euphonia/internal/metrics"
)

// DefaultInterval is used when no run interval is configured.
const DefaultInterval = 15 * time.Minute

// DefaultTaskTimeout bounds a single task run when no timeout is
// configured.
const DefaultTaskTimeout = time.Minute

// Task is the unit of work a Service runs on each tick. The now
// argument is the time the run was triggered.
type Task func(ctx context.Context, now time.Time) error

// Config holds periodic service configuration.
type Config struct {
	// Name identifies the service in logs and supervisor reports.
	Name string

	// Interval between runs. Non-positive falls back to
	// DefaultInterval.
	Interval time.Duration

	// TaskTimeout bounds a single run. Non-positive falls back to
	// DefaultTaskTimeout.
	TaskTimeout time.Duration

	// RunOnStart triggers a run as soon as the service starts.
	RunOnStart bool
}

// Service runs a task on a fixed interval under supervision. A failed
// run is logged and retried on the next tick; only context
// cancellation ends the service.
type Service struct {
	task   Task
	config Config
	logger zerolog.Logger
}

// NewService creates a periodic service around the task.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(task Task, cfg Config, logger zerolog.Logger) *Service {
	if cfg.Name == "" {
		cfg.Name = "refresh"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = DefaultTaskTimeout
	}
	return &Service{
		task:   task,
		config: cfg,
		logger: logger.With().Str("service", cfg.Name).Logger(),
	}
}

// Serve implements the suture.Service interface. It runs the task on
// the configured interval until the context is canceled.
func (s *Service) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_start", s.config.RunOnStart).
		Dur("interval", s.config.Interval).
		Msg("Refresh service starting")

	if s.config.RunOnStart {
		if err := s.run(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Initial run failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.run(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Scheduled run failed")
			}
		}
	}
}

// run performs one task run under the configured timeout.
func (s *Service) run(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, s.config.TaskTimeout)
	defer cancel()

	start := time.Now()
	if err := s.task(runCtx, start); err != nil {
		return err
	}

	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Run complete")
	return nil
}

// String returns the service name for supervisor logging.
func (s *Service) String() string {
	return s.config.Name
}

// Refresher recomputes listening patterns, returning how many were
// stored. Satisfied by source.PatternRefresher.
type Refresher interface {
	RefreshAll(ctx context.Context, now time.Time) (int, error)
}

// NewPatternRefreshService wires a pattern refresher into a periodic
// service, recording each run's outcome and duration.
func NewPatternRefreshService(r Refresher, cfg Config, logger zerolog.Logger) *Service {
	if cfg.Name == "" {
		cfg.Name = "pattern-refresh"
	}
	task := func(ctx context.Context, now time.Time) error {
		start := time.Now()
		n, err := r.RefreshAll(ctx, now)
		metrics.RecordRefreshRun(time.Since(start), n, err)
		return err
	}
	return NewService(task, cfg, logger)
}

// Sweeper removes expired response cache entries, returning how many
// were dropped. Satisfied by the recommendation engine.
type Sweeper interface {
	SweepCache(now time.Time) int
}

// NewCacheSweepService wires the response cache sweep into a periodic
// service.
func NewCacheSweepService(sw Sweeper, cfg Config, logger zerolog.Logger) *Service {
	if cfg.Name == "" {
		cfg.Name = "cache-sweep"
	}
	task := func(_ context.Context, now time.Time) error {
		metrics.AddResponsesSwept(sw.SweepCache(now))
		return nil
	}
	return NewService(task, cfg, logger)
}
