// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package services

import (
	"context"
	"fmt"
)

// StartStopManager is the lifecycle of *collector.Service.
type StartStopManager interface {
	Start(ctx context.Context) error
	Stop() error
}

// CollectorService runs a StartStopManager under suture: Start, wait for
// cancellation, Stop.
type CollectorService struct {
	manager StartStopManager
	name    string
}

// NewCollectorService wraps manager.
func NewCollectorService(manager StartStopManager) *CollectorService {
	return &CollectorService{
		manager: manager,
		name:    "zetta-poller",
	}
}

// Serve implements suture.Service. A Start error is returned so suture
// restarts the service with backoff.
func (s *CollectorService) Serve(ctx context.Context) error {
	if err := s.manager.Start(ctx); err != nil {
		return fmt.Errorf("collector start failed: %w", err)
	}

	<-ctx.Done()

	// Stop waits for an in-flight poll cycle.
	if err := s.manager.Stop(); err != nil {
		return fmt.Errorf("collector stop failed: %w", err)
	}

	return ctx.Err()
}

// String names the service in supervisor logs.
func (s *CollectorService) String() string {
	return s.name
}
