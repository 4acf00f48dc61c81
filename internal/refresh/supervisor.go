// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// SupervisorConfig holds supervision parameters.
type SupervisorConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	// Default: 5
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay in seconds.
	// Default: 30
	FailureDecay float64

	// FailureBackoff is the duration to wait when threshold is exceeded.
	// Default: 15s
	FailureBackoff time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration
}

// DefaultSupervisorConfig returns suture's documented defaults.
func DefaultSupervisorConfig() SupervisorConfig {
	return SupervisorConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Supervisor runs the background refresh services under a suture root
// so a panicking service is restarted rather than taking the host
// down.
type Supervisor struct {
	root   *suture.Supervisor
	logger *slog.Logger
	config SupervisorConfig
}

// NewSupervisor creates the supervision root with structured-log event
// hooks.
func NewSupervisor(logger *slog.Logger, config SupervisorConfig) *Supervisor {
	// Apply defaults for zero values
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5.0
	}
	if config.FailureDecay == 0 {
		config.FailureDecay = 30.0
	}
	if config.FailureBackoff == 0 {
		config.FailureBackoff = 15 * time.Second
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	// sutureslog's hook constructor is MustHook on a pointer receiver;
	// there is no EventHook(logger) helper.
	handler := &sutureslog.Handler{Logger: logger}

	root := suture.New("euphonia-refresh", suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	})

	return &Supervisor{
		root:   root,
		logger: logger,
		config: config,
	}
}

// Add places a service under supervision.
func (s *Supervisor) Add(svc suture.Service) suture.ServiceToken {
	return s.root.Add(svc)
}

// Remove stops and removes a supervised service.
func (s *Supervisor) Remove(token suture.ServiceToken) error {
	return s.root.Remove(token)
}

// Serve starts the supervisor and blocks until the context is
// canceled.
func (s *Supervisor) Serve(ctx context.Context) error {
	return s.root.Serve(ctx)
}

// ServeBackground starts the supervisor in a background goroutine.
// The returned channel receives the error (or nil) when it stops.
func (s *Supervisor) ServeBackground(ctx context.Context) <-chan error {
	return s.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that failed to stop within the
// shutdown timeout.
func (s *Supervisor) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return s.root.UnstoppedServiceReport()
}
