// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package collector

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/zetta-collector/internal/config"
	"github.com/tomtom215/zetta-collector/internal/logging"
	"github.com/tomtom215/zetta-collector/internal/metrics"
	"github.com/tomtom215/zetta-collector/internal/models"
	"github.com/tomtom215/zetta-collector/internal/zetta"
)

// SessionFactory opens a new, private Simple API session.
// The caller owns the session and must Close it.
type SessionFactory func() zetta.API

// StatusMap holds the statuses fetched in one cycle, keyed by station UUID.
// A station whose fetch failed has no entry.
type StatusMap map[string]*models.StationStatus

type fetchResult struct {
	id     string
	status *models.StationStatus
}

// Poller fans status fetches out over batch workers.
type Poller struct {
	newSession SessionFactory
	batchSize  int
	maxWorkers int
}

// NewPoller creates a poller. A zero BatchSize uses config.DefaultBatchSize;
// a zero MaxWorkers runs every batch at once.
func NewPoller(newSession SessionFactory, cfg config.PollConfig) *Poller {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	return &Poller{
		newSession: newSession,
		batchSize:  batchSize,
		maxWorkers: max(cfg.MaxWorkers, 0),
	}
}

// Poll fetches the status of every station in dir and returns when every
// worker has finished. Each batch runs on its own session; results reach the
// map through a single aggregator goroutine, which is its only writer.
func (p *Poller) Poll(ctx context.Context, dir *Directory) StatusMap {
	batches := partition(dir.IDs(), p.batchSize)
	metrics.PollWorkers.Set(float64(len(batches)))

	statuses := make(StatusMap, dir.Len())
	results := make(chan fetchResult, p.batchSize)
	aggregated := make(chan struct{})

	go func() {
		defer close(aggregated)
		for r := range results {
			statuses[r.id] = r.status
		}
	}()

	var g errgroup.Group
	if p.maxWorkers > 0 {
		g.SetLimit(p.maxWorkers)
	}
	for _, batch := range batches {
		g.Go(func() error {
			p.pollBatch(ctx, dir, batch, results)
			return nil
		})
	}

	// Workers never return errors; a failed station is simply absent.
	_ = g.Wait()
	close(results)
	<-aggregated

	logging.Ctx(ctx).Debug().
		Int("batches", len(batches)).
		Int("fetched", len(statuses)).
		Int("stations", dir.Len()).
		Msg("[collector] Status fan-out complete")

	return statuses
}

// pollBatch fetches one batch sequentially on a private session.
func (p *Poller) pollBatch(ctx context.Context, dir *Directory, batch []string, results chan<- fetchResult) {
	session := p.newSession()
	defer session.Close()

	for _, id := range batch {
		if id == "" || !dir.Contains(id) {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		start := time.Now()
		status, err := session.OnAirStatus(ctx, id)
		metrics.RecordStationFetch(time.Since(start), err)

		if err != nil {
			event := logging.Ctx(ctx).Warn()
			if zetta.IsRejected(err) {
				event = logging.Ctx(ctx).Debug()
			}
			event.Str("uuid", id).Err(err).Msg("[collector] Status fetch failed, station dropped this cycle")
			continue
		}

		results <- fetchResult{id: id, status: status}
	}
}
