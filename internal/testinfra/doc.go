// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

// Package testinfra provides test infrastructure shared across packages.
//
// ZettaServer is an in-process fake of the RCS Zetta Simple API built on
// httptest. It serves a configurable roster, organisations and on-air
// statuses, injects per-station failures, records every request and tracks
// peak request concurrency.
//
//	srv := testinfra.NewZettaServer(t)
//	srv.SetStations(testinfra.Station("s-1", "KAAA"))
//	srv.SetStatus("s-1", models.StationStatus{Mode: "Auto", Status: "OnAir"})
//	cfg := srv.Config()
package testinfra
