// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

// Package logging provides centralized zerolog-based structured logging for the
// Zetta collector.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once from main via Init
//   - JSON output for production and console output for development
//   - Poll-cycle correlation IDs carried through context.Context
//   - An slog adapter so the suture supervisor logs through zerolog
//   - Credential redaction helpers for configuration logging
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("stations", dir.Len()).Msg("[collector] Directory built")
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Warn().Str("uuid", id).Err(err).Msg("[collector] Status fetch failed")
//
// # Output
//
// Logs go to stderr by default. In -once mode stdout carries only the
// document batch, so the two streams never interleave.
//
// # Thread Safety
//
// All package-level functions are safe for concurrent use. Init and
// SetLogger take a write lock; every logging call takes a read lock.
package logging
