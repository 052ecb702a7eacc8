// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

// Package services adapts the collector's components to suture.Service.
//
// CollectorService wraps anything with a Start(ctx)/Stop() lifecycle, such
// as *collector.Service. HTTPServerService wraps an *http.Server, turning
// ListenAndServe/Shutdown into a context-driven Serve.
package services
