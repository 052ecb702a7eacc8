// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

/*
Package api serves the collector's HTTP API in service mode.

Endpoints:

	GET  /api/v1/documents  latest poll snapshot (503 until the first cycle)
	POST /api/v1/poll       run a poll cycle now and return its documents
	GET  /api/v1/stations   station directory with group membership
	GET  /api/v1/health     "healthy" once a cycle completed, else "starting"
	GET  /metrics           Prometheus scrape

Every /api/v1 response uses the models.APIResponse envelope. The router is
chi with RequestID, RealIP, Recoverer, per-IP httprate limiting and gzip
compression of JSON bodies.
*/
package api
