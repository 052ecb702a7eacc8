// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

// Package metrics exposes the collector's Prometheus instrumentation:
// poll cycles, per-station fetches, Zetta API calls, the circuit breaker,
// and the collector's own HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch results used as the "result" label.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)

var (
	// Poll cycle metrics
	PollCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zetta_poll_cycle_duration_seconds",
			Help:    "Duration of a complete poll cycle (fan-out, join, document build)",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	PollCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zetta_poll_cycles_total",
			Help: "Total number of completed poll cycles",
		},
	)

	DocumentsEmitted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "zetta_documents_emitted",
			Help: "Number of documents produced by the most recent poll cycle",
		},
	)

	PollWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "zetta_poll_workers",
			Help: "Number of batch workers launched by the most recent poll cycle",
		},
	)

	// Station metrics
	StationFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zetta_station_fetches_total",
			Help: "Total number of on-air status fetches by result",
		},
		[]string{"result"}, // success, failure
	)

	StationFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zetta_station_fetch_duration_seconds",
			Help:    "Duration of a single on-air status fetch",
			Buckets: prometheus.DefBuckets,
		},
	)

	DirectoryStations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "zetta_directory_stations",
			Help: "Number of stations in the station directory",
		},
	)

	// Zetta Simple API metrics
	ZettaRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zetta_api_requests_total",
			Help: "Total number of Zetta Simple API requests by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Collector HTTP API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collector_http_requests_total",
			Help: "Total number of collector HTTP API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collector_http_request_duration_seconds",
			Help:    "Duration of collector HTTP API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RecordPollCycle records one completed cycle.
func RecordPollCycle(duration time.Duration, documents int) {
	PollCycleDuration.Observe(duration.Seconds())
	PollCyclesTotal.Inc()
	DocumentsEmitted.Set(float64(documents))
}

// RecordStationFetch records one on-air status fetch.
func RecordStationFetch(duration time.Duration, err error) {
	StationFetchDuration.Observe(duration.Seconds())
	if err != nil {
		StationFetchesTotal.WithLabelValues(ResultFailure).Inc()
		return
	}
	StationFetchesTotal.WithLabelValues(ResultSuccess).Inc()
}

// RecordZettaRequest records one Simple API request.
func RecordZettaRequest(endpoint string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	ZettaRequestsTotal.WithLabelValues(endpoint, result).Inc()
}

// RecordAPIRequest records one collector HTTP API request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
