// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package collector

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/zetta-collector/internal/config"
	"github.com/tomtom215/zetta-collector/internal/logging"
	"github.com/tomtom215/zetta-collector/internal/models"
)

// Snapshot is the result of the most recent poll cycle.
type Snapshot struct {
	Documents []models.Document
	PolledAt  time.Time
	Duration  time.Duration
	Cycles    int64
}

// Ready reports whether at least one cycle has completed.
func (s *Snapshot) Ready() bool {
	return s.Cycles > 0
}

// Service polls a Collector periodically and keeps the latest Snapshot.
type Service struct {
	collector *Collector
	interval  time.Duration

	// pollMu serialises cycles from the loop and TriggerPoll.
	pollMu sync.Mutex

	snapMu   sync.RWMutex
	snapshot Snapshot

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewService creates a stopped service. interval <= 0 uses config.DefaultPollInterval.
func NewService(c *Collector, interval time.Duration) *Service {
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	return &Service{
		collector: c,
		interval:  interval,
	}
}

// Start launches the poll loop. The first cycle runs immediately.
// Starting a running service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopChan = make(chan struct{})
	stop := s.stopChan
	s.mu.Unlock()

	logging.Info().Dur("interval", s.interval).Str("host", s.collector.Host()).Msg("[collector] Starting poll loop")

	s.wg.Add(1)
	go s.pollLoop(ctx, stop)

	return nil
}

// Stop ends the poll loop and waits for an in-flight cycle to finish.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	logging.Info().Msg("[collector] Poll loop stopped")
	return nil
}

func (s *Service) pollLoop(ctx context.Context, stop <-chan struct{}) {
	defer s.wg.Done()

	s.TriggerPoll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.TriggerPoll(ctx)
		}
	}
}

// TriggerPoll runs one cycle now, stores it as the latest snapshot and
// returns its documents.
func (s *Service) TriggerPoll(ctx context.Context) []models.Document {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	start := time.Now()
	docs := s.collector.Poll(ctx)

	s.snapMu.Lock()
	s.snapshot = Snapshot{
		Documents: docs,
		PolledAt:  start,
		Duration:  time.Since(start),
		Cycles:    s.snapshot.Cycles + 1,
	}
	s.snapMu.Unlock()

	return docs
}

// Snapshot returns the latest snapshot. The Documents slice is shared and
// must not be modified.
func (s *Service) Snapshot() Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snapshot
}

// Collector returns the underlying collector.
func (s *Service) Collector() *Collector {
	return s.collector
}

// Interval returns the poll period.
func (s *Service) Interval() time.Duration {
	return s.interval
}

// Host returns the host tag of the underlying collector.
func (s *Service) Host() string {
	return s.collector.Host()
}

// Stations returns the station directory in roster order.
func (s *Service) Stations() []models.Station {
	return s.collector.Directory().Stations()
}
