// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package collector

import (
	"context"
	"sort"

	"github.com/tomtom215/zetta-collector/internal/logging"
	"github.com/tomtom215/zetta-collector/internal/metrics"
	"github.com/tomtom215/zetta-collector/internal/models"
	"github.com/tomtom215/zetta-collector/internal/zetta"
)

// Directory is the station roster with group membership resolved.
// It is built once and never modified, so it is safe for concurrent reads.
type Directory struct {
	stations map[string]*models.Station
	order    []string
}

// BuildDirectory fetches the roster and the organisations sequentially on
// one session and joins them. A failed fetch is logged and treated as empty,
// so a failed roster yields an empty directory.
func BuildDirectory(ctx context.Context, api zetta.API) *Directory {
	stations, order := buildStations(ctx, api)
	orgs := buildOrganizations(ctx, api)

	names := make([]string, 0, len(orgs))
	for name := range orgs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, id := range order {
		station := stations[id]
		for _, name := range names {
			if _, member := orgs[name][id]; member {
				station.Groups = append(station.Groups, name)
			}
		}
	}

	metrics.DirectoryStations.Set(float64(len(order)))
	logging.Info().
		Int("stations", len(order)).
		Int("organizations", len(orgs)).
		Msg("[collector] Station directory built")

	return &Directory{stations: stations, order: order}
}

// buildStations returns the roster keyed by UUID plus the roster order.
// A repeated UUID replaces the earlier record but keeps its position.
func buildStations(ctx context.Context, api zetta.API) (map[string]*models.Station, []string) {
	stations := make(map[string]*models.Station)

	list, err := api.ListStations(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("[collector] Failed to list stations")
		return stations, nil
	}

	order := make([]string, 0, len(list))
	for i := range list {
		s := list[i]
		if s.UUID == "" {
			logging.Warn().Str("name", s.Name).Msg("[collector] Skipping station without uuid")
			continue
		}
		s.Groups = []string{}
		if _, seen := stations[s.UUID]; !seen {
			order = append(order, s.UUID)
		} else {
			logging.Warn().Str("uuid", s.UUID).Msg("[collector] Duplicate station uuid, keeping last record")
		}
		stations[s.UUID] = &s
	}

	return stations, order
}

// buildOrganizations returns each organisation name with its member set.
// Organisations without members are skipped. Organisations sharing a name
// are merged.
func buildOrganizations(ctx context.Context, api zetta.API) map[string]map[string]struct{} {
	orgs := make(map[string]map[string]struct{})

	list, err := api.ListOrganizations(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("[collector] Failed to list organizations")
		return orgs
	}

	for i := range list {
		org := &list[i]
		if len(org.StationUUIDs) == 0 {
			continue
		}
		members, ok := orgs[org.Name]
		if !ok {
			members = make(map[string]struct{}, len(org.StationUUIDs))
			orgs[org.Name] = members
		}
		for _, id := range org.StationUUIDs {
			members[id] = struct{}{}
		}
	}

	return orgs
}

// Len returns the number of stations.
func (d *Directory) Len() int {
	return len(d.order)
}

// IDs returns the station UUIDs in roster order.
func (d *Directory) IDs() []string {
	ids := make([]string, len(d.order))
	copy(ids, d.order)
	return ids
}

// Contains reports whether id is in the directory.
func (d *Directory) Contains(id string) bool {
	_, ok := d.stations[id]
	return ok
}

// Station returns a copy of one station.
func (d *Directory) Station(id string) (models.Station, bool) {
	s, ok := d.stations[id]
	if !ok {
		return models.Station{}, false
	}
	return copyStation(s), true
}

// Stations returns copies of every station in roster order.
func (d *Directory) Stations() []models.Station {
	out := make([]models.Station, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, copyStation(d.stations[id]))
	}
	return out
}

func copyStation(s *models.Station) models.Station {
	c := *s
	c.Groups = append(make([]string, 0, len(s.Groups)), s.Groups...)
	return c
}
