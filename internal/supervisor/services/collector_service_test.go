// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/zetta-collector/internal/collector"
	"github.com/tomtom215/zetta-collector/internal/config"
	"github.com/tomtom215/zetta-collector/internal/models"
	"github.com/tomtom215/zetta-collector/internal/testinfra"
)

type mockManager struct {
	started    atomic.Int32
	stopped    atomic.Int32
	startError error
	stopError  error
}

func (m *mockManager) Start(context.Context) error {
	if m.startError != nil {
		return m.startError
	}
	m.started.Add(1)
	return nil
}

func (m *mockManager) Stop() error {
	m.stopped.Add(1)
	return m.stopError
}

func TestCollectorService_Interfaces(t *testing.T) {
	var _ suture.Service = (*CollectorService)(nil)
	var _ StartStopManager = (*collector.Service)(nil)
}

func TestCollectorService_StartThenStopOnCancel(t *testing.T) {
	mgr := &mockManager{}
	svc := NewCollectorService(mgr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for mgr.started.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if mgr.started.Load() != 1 {
		t.Fatal("manager was not started")
	}
	if mgr.stopped.Load() != 0 {
		t.Fatal("manager stopped before cancellation")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
	if mgr.stopped.Load() != 1 {
		t.Errorf("expected one Stop, got %d", mgr.stopped.Load())
	}
}

func TestCollectorService_StartError(t *testing.T) {
	startErr := errors.New("boom")
	mgr := &mockManager{startError: startErr}

	err := NewCollectorService(mgr).Serve(context.Background())
	if !errors.Is(err, startErr) {
		t.Errorf("expected wrapped start error, got %v", err)
	}
	if mgr.stopped.Load() != 0 {
		t.Error("Stop must not run after a failed Start")
	}
}

func TestCollectorService_StopError(t *testing.T) {
	stopErr := errors.New("stuck")
	mgr := &mockManager{stopError: stopErr}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewCollectorService(mgr).Serve(ctx)
	if !errors.Is(err, stopErr) {
		t.Errorf("expected wrapped stop error, got %v", err)
	}
}

func TestCollectorService_String(t *testing.T) {
	if got := NewCollectorService(&mockManager{}).String(); got != "zetta-poller" {
		t.Errorf("String() = %q", got)
	}
}

func TestCollectorService_RunsRealPollLoop(t *testing.T) {
	srv := testinfra.NewZettaServer(t)
	srv.SetStations(testinfra.Station("A", "KAAA"))
	srv.SetStatus("A", models.StationStatus{Mode: "auto", Status: "onAir"})

	c, err := collector.New(context.Background(), srv.Config(), config.PollConfig{})
	if err != nil {
		t.Fatalf("collector.New: %v", err)
	}
	pollSvc := collector.NewService(c, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewCollectorService(pollSvc).Serve(ctx) }()

	deadline := time.Now().Add(3 * time.Second)
	for {
		s := pollSvc.Snapshot()
		if s.Ready() || !time.Now().Before(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	snap := pollSvc.Snapshot()
	if !snap.Ready() || len(snap.Documents) != 1 {
		t.Fatalf("expected one document after first cycle, got %+v", snap)
	}

	cancel()
	<-done
}
