// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

// Package zetta is the HTTP session client for the RCS Zetta Simple API.
//
// Each Client owns a private transport and is meant to be used by one
// goroutine at a time and closed when its work is done. A Breaker can wrap
// any number of sessions so that a failing Zetta server stops receiving
// traffic for every worker at once.
//
// Failures are returned, never retried:
//   - transport errors and timeouts
//   - non-200 HTTP status (*StatusError)
//   - malformed JSON
//   - an envelope without the success marker (*ResponseTypeError, ErrUnsuccessful)
package zetta
