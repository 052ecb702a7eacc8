// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package collector

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/zetta-collector/internal/config"
)

func newScenarioService(t *testing.T, interval time.Duration) *Service {
	t.Helper()

	c, err := New(context.Background(), validZettaConfig(), config.PollConfig{}, WithSessionFactory(scenarioBackend().factory()))
	checkNoError(t, err)
	return NewService(c, interval)
}

func waitForCycles(t *testing.T, s *Service, n int64) Snapshot {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if snap := s.Snapshot(); snap.Cycles >= n {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d cycles", n)
	return Snapshot{}
}

func TestNewService_DefaultInterval(t *testing.T) {
	t.Parallel()

	s := newScenarioService(t, 0)
	if s.Interval() != config.DefaultPollInterval {
		t.Errorf("interval = %v, want %v", s.Interval(), config.DefaultPollInterval)
	}
	checkTrue(t, "collector exposed", s.Collector() != nil)
}

func TestService_SnapshotBeforeFirstPoll(t *testing.T) {
	t.Parallel()

	snap := newScenarioService(t, time.Hour).Snapshot()
	checkTrue(t, "not ready", !snap.Ready())
	checkSliceLen(t, "documents", len(snap.Documents), 0)
}

func TestService_StartPollsImmediately(t *testing.T) {
	t.Parallel()

	s := newScenarioService(t, time.Hour)
	checkNoError(t, s.Start(context.Background()))
	defer s.Stop()

	snap := waitForCycles(t, s, 1)
	checkTrue(t, "ready", snap.Ready())
	checkSliceLen(t, "documents", len(snap.Documents), 1)
	checkStringEqual(t, "station", snap.Documents[0].Fields.UUID, "A")
	checkTrue(t, "polled at set", !snap.PolledAt.IsZero())
}

func TestService_TickerPolls(t *testing.T) {
	t.Parallel()

	s := newScenarioService(t, 20*time.Millisecond)
	checkNoError(t, s.Start(context.Background()))
	defer s.Stop()

	waitForCycles(t, s, 3)
}

func TestService_StartStopIdempotent(t *testing.T) {
	t.Parallel()

	s := newScenarioService(t, time.Hour)
	checkNoError(t, s.Stop())
	checkNoError(t, s.Start(context.Background()))
	checkNoError(t, s.Start(context.Background()))
	waitForCycles(t, s, 1)
	checkNoError(t, s.Stop())
	checkNoError(t, s.Stop())

	// Restart after stop.
	checkNoError(t, s.Start(context.Background()))
	waitForCycles(t, s, 2)
	checkNoError(t, s.Stop())
}

func TestService_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	s := newScenarioService(t, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	checkNoError(t, s.Start(ctx))
	waitForCycles(t, s, 1)
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poll loop did not exit on context cancel")
	}
	checkNoError(t, s.Stop())
}

func TestService_TriggerPollIncrementsCycles(t *testing.T) {
	t.Parallel()

	s := newScenarioService(t, time.Hour)
	docs := s.TriggerPoll(context.Background())
	checkSliceLen(t, "documents", len(docs), 1)
	checkIntEqual(t, "cycles", int(s.Snapshot().Cycles), 1)

	s.TriggerPoll(context.Background())
	checkIntEqual(t, "cycles", int(s.Snapshot().Cycles), 2)
}
