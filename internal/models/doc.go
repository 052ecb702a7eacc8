// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

// Package models defines the Zetta Simple API wire types, the Document
// output schema, and the collector HTTP API envelope.
package models
