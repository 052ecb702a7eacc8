// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package collector

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/tomtom215/zetta-collector/internal/models"
	"github.com/tomtom215/zetta-collector/internal/zetta"
)

var errFakeFetch = errors.New("fake fetch failure")

// fakeBackend is an in-memory Simple API shared by every fakeSession it opens.
type fakeBackend struct {
	stations []models.Station
	orgs     []models.Organization
	statuses map[string]*models.StationStatus
	failing  map[string]bool

	stationsErr error
	orgsErr     error

	opened atomic.Int32
	closed atomic.Int32

	mu      sync.Mutex
	fetched []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		statuses: make(map[string]*models.StationStatus),
		failing:  make(map[string]bool),
	}
}

func (b *fakeBackend) factory() SessionFactory {
	return func() zetta.API {
		b.opened.Add(1)
		return &fakeSession{backend: b}
	}
}

func (b *fakeBackend) fetchedIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.fetched...)
}

type fakeSession struct {
	backend *fakeBackend
	closed  atomic.Bool
}

func (s *fakeSession) ListStations(context.Context) ([]models.Station, error) {
	if s.backend.stationsErr != nil {
		return nil, s.backend.stationsErr
	}
	return append([]models.Station(nil), s.backend.stations...), nil
}

func (s *fakeSession) ListOrganizations(context.Context) ([]models.Organization, error) {
	if s.backend.orgsErr != nil {
		return nil, s.backend.orgsErr
	}
	return append([]models.Organization(nil), s.backend.orgs...), nil
}

func (s *fakeSession) OnAirStatus(_ context.Context, id string) (*models.StationStatus, error) {
	if s.closed.Load() {
		return nil, zetta.ErrClosed
	}
	s.backend.mu.Lock()
	s.backend.fetched = append(s.backend.fetched, id)
	s.backend.mu.Unlock()

	if s.backend.failing[id] {
		return nil, errFakeFetch
	}
	status, ok := s.backend.statuses[id]
	if !ok {
		return nil, errFakeFetch
	}
	cp := *status
	return &cp, nil
}

func (s *fakeSession) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.backend.closed.Add(1)
	}
}

// scenarioBackend is the two-station scenario: A has no groups, B is in "60s".
func scenarioBackend() *fakeBackend {
	b := newFakeBackend()
	b.stations = []models.Station{
		{UUID: "A", Name: "X", CallLetters: "KAAA", Role: "Primary", InternalID: 1},
		{UUID: "B", Name: "Y", CallLetters: "KBBB", Role: "Primary", InternalID: 2},
	}
	b.orgs = []models.Organization{
		{UUID: "o-1", Name: "60s", StationUUIDs: []string{"B"}},
	}
	b.statuses["A"] = &models.StationStatus{
		Mode:   "auto",
		Status: "onAir",
		Events: []models.PlaylistItem{{
			Artist:     "Q",
			Title:      "R",
			AssetType:  "song",
			ChainType:  "music",
			StatusCode: "OK",
		}},
	}
	b.failing["B"] = true
	return b
}
