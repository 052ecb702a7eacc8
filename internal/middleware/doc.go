// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

/*
Package middleware provides HTTP middleware for the collector's API server.

Key Components:

  - RequestID: UUID request tracking, wired into the logging context
  - PrometheusMetrics: request count and latency per chi route pattern

Both use the http.HandlerFunc form; internal/api adapts them for chi's
r.Use.

Usage Example:

	handler := middleware.RequestID(middleware.PrometheusMetrics(documents))

	func documents(w http.ResponseWriter, r *http.Request) {
	    logging.Ctx(r.Context()).Info().Msg("[api] Serving snapshot")
	}

Metrics are labelled with the matched route pattern (for example
"/api/v1/documents") rather than the raw URL path, so unknown paths cannot
grow label cardinality. Requests that match no route are labelled
"unmatched".
*/
package middleware
