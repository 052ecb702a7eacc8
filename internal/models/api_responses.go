// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package models

import (
	"time"
)

// APIResponse is the envelope of every collector HTTP API response.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"host": "zetta01", "name": "zetta", "fields": {...}}],
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z", "count": 12}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_READY", "message": "No poll has completed yet"},
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes the response payload.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`

	// Count is the number of items in Data, when Data is a list.
	Count int `json:"count,omitempty"`

	// PolledAt and PollDurationMS describe the poll cycle that produced Data.
	PolledAt       *time.Time `json:"polled_at,omitempty"`
	PollDurationMS int64      `json:"poll_duration_ms,omitempty"`
}

// APIError is the error body of a failed request.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status        string     `json:"status"`
	Host          string     `json:"host"`
	Stations      int        `json:"stations"`
	LastPoll      *time.Time `json:"last_poll,omitempty"`
	LastDocuments int        `json:"last_documents"`
	Cycles        int64      `json:"cycles"`
	Uptime        float64    `json:"uptime_seconds"`
}

// StationEntry is one row of GET /api/v1/stations.
type StationEntry struct {
	UUID        string   `json:"uuid"`
	Name        string   `json:"name"`
	CallLetters string   `json:"callLetters"`
	Role        string   `json:"role"`
	InternalID  int      `json:"internalId"`
	Groups      []string `json:"groups"`
}
