// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

// Package collector turns the Zetta Simple API into Document batches.
//
// # Lifecycle
//
//  1. New validates credentials and builds the Directory once, sequentially,
//     on a single session (station roster, then organisations).
//  2. Each Poll partitions the directory into fixed-size batches and runs one
//     worker per batch. Every worker opens its own session, fetches its
//     stations one after another and closes the session when done.
//  3. A single aggregator goroutine collects the results into a StatusMap.
//     Poll returns only after every worker and the aggregator have finished.
//  4. BuildDocuments joins the map with the directory.
//
// A station whose status fetch fails is logged and left out of that cycle's
// batch. There is no retry; the next cycle tries again.
//
// # Concurrency
//
// The Directory is read-only after construction. Sessions are never shared
// between workers. The only shared state during a poll is the results
// channel. Poll.max_workers optionally caps concurrent workers at the cost of
// a longer cycle.
//
// Service adds a periodic loop and keeps the latest batch for the HTTP API.
package collector
