// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package collector

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/tomtom215/zetta-collector/internal/config"
	"github.com/tomtom215/zetta-collector/internal/models"
	"github.com/tomtom215/zetta-collector/internal/testinfra"
	"github.com/tomtom215/zetta-collector/internal/zetta"
)

// largeBackend has n stations; every station whose index is divisible by
// failEvery fails (failEvery <= 0 means none fail).
func largeBackend(n, failEvery int) *fakeBackend {
	b := newFakeBackend()
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("s-%04d", i)
		b.stations = append(b.stations, models.Station{UUID: id, Name: id})
		b.statuses[id] = &models.StationStatus{Mode: "auto", Status: "onAir"}
		if failEvery > 0 && i%failEvery == 0 {
			b.failing[id] = true
		}
	}
	return b
}

func TestPoller_StatusKeysSubsetOfDirectory(t *testing.T) {
	t.Parallel()

	for _, failEvery := range []int{0, 1, 2, 3, 7} {
		b := largeBackend(103, failEvery)
		dir := BuildDirectory(context.Background(), b.factory()())

		statuses := NewPoller(b.factory(), config.PollConfig{BatchSize: 25}).Poll(context.Background(), dir)

		for id := range statuses {
			checkTrue(t, fmt.Sprintf("%s in directory (failEvery=%d)", id, failEvery), dir.Contains(id))
		}
		for id := range b.failing {
			_, present := statuses[id]
			checkTrue(t, fmt.Sprintf("failed %s absent", id), !present)
		}
		checkIntEqual(t, fmt.Sprintf("fetched count (failEvery=%d)", failEvery), len(statuses), 103-len(b.failing))
	}
}

func TestPoller_EveryStationFetchedOnce(t *testing.T) {
	t.Parallel()

	b := largeBackend(60, 0)
	dir := BuildDirectory(context.Background(), b.factory()())

	NewPoller(b.factory(), config.PollConfig{BatchSize: 25}).Poll(context.Background(), dir)

	fetched := b.fetchedIDs()
	sort.Strings(fetched)
	want := dir.IDs()
	sort.Strings(want)
	checkSliceLen(t, "fetched", len(fetched), len(want))
	for i := range want {
		checkStringEqual(t, "fetched id", fetched[i], want[i])
	}
}

func TestPoller_OneSessionPerBatchAndAllClosed(t *testing.T) {
	t.Parallel()

	b := largeBackend(60, 4)
	dir := BuildDirectory(context.Background(), b.factory()())
	b.opened.Store(0)
	b.closed.Store(0)

	NewPoller(b.factory(), config.PollConfig{BatchSize: 25}).Poll(context.Background(), dir)

	checkIntEqual(t, "sessions opened", int(b.opened.Load()), 3)
	checkIntEqual(t, "sessions closed", int(b.closed.Load()), 3)
}

func TestPoller_EmptyDirectory(t *testing.T) {
	t.Parallel()

	b := newFakeBackend()
	dir := BuildDirectory(context.Background(), b.factory()())
	b.opened.Store(0)

	statuses := NewPoller(b.factory(), config.PollConfig{}).Poll(context.Background(), dir)
	checkIntEqual(t, "statuses", len(statuses), 0)
	checkIntEqual(t, "no sessions", int(b.opened.Load()), 0)
}

func TestPoller_CancelledContext(t *testing.T) {
	t.Parallel()

	b := largeBackend(50, 0)
	dir := BuildDirectory(context.Background(), b.factory()())
	b.opened.Store(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	statuses := NewPoller(b.factory(), config.PollConfig{BatchSize: 10}).Poll(ctx, dir)
	checkIntEqual(t, "no statuses after cancel", len(statuses), 0)
	checkIntEqual(t, "sessions still closed", int(b.closed.Load()), int(b.opened.Load()))
}

func TestPoller_MaxWorkersCapsConcurrency(t *testing.T) {
	t.Parallel()

	srv := testinfra.NewZettaServer(t)
	var stations []models.Station
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("s-%02d", i)
		stations = append(stations, testinfra.Station(id, id))
		srv.SetStatus(id, models.StationStatus{Mode: "auto"})
	}
	srv.SetStations(stations...)
	srv.SetDelay(20 * time.Millisecond)

	cfg := srv.Config()
	factory := func() zetta.API { return zetta.NewClient(&cfg) }
	dir := BuildDirectory(context.Background(), factory())

	statuses := NewPoller(factory, config.PollConfig{BatchSize: 2, MaxWorkers: 2}).Poll(context.Background(), dir)

	checkIntEqual(t, "statuses", len(statuses), 12)
	checkTrue(t, fmt.Sprintf("peak concurrency %d <= 2", srv.MaxConcurrent()), srv.MaxConcurrent() <= 2)
}

func TestPoller_UnboundedRunsBatchesInParallel(t *testing.T) {
	t.Parallel()

	srv := testinfra.NewZettaServer(t)
	var stations []models.Station
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("s-%02d", i)
		stations = append(stations, testinfra.Station(id, id))
		srv.SetStatus(id, models.StationStatus{Mode: "auto"})
	}
	srv.SetStations(stations...)
	srv.SetDelay(100 * time.Millisecond)

	cfg := srv.Config()
	factory := func() zetta.API { return zetta.NewClient(&cfg) }
	dir := BuildDirectory(context.Background(), factory())

	start := time.Now()
	statuses := NewPoller(factory, config.PollConfig{BatchSize: 1}).Poll(context.Background(), dir)
	elapsed := time.Since(start)

	checkIntEqual(t, "statuses", len(statuses), 8)
	checkTrue(t, fmt.Sprintf("parallel cycle (%v) well under serial 800ms", elapsed), elapsed < 600*time.Millisecond)
}

func TestNewPoller_Defaults(t *testing.T) {
	t.Parallel()

	p := NewPoller(nil, config.PollConfig{BatchSize: 0, MaxWorkers: -5})
	checkIntEqual(t, "batchSize", p.batchSize, config.DefaultBatchSize)
	checkIntEqual(t, "maxWorkers", p.maxWorkers, 0)
}
