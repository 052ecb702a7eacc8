// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package zetta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/zetta-collector/internal/logging"
	"github.com/tomtom215/zetta-collector/internal/metrics"
	"github.com/tomtom215/zetta-collector/internal/models"
)

// DefaultBreakerName labels the breaker's metrics.
const DefaultBreakerName = "zetta-api"

// Breaker is a circuit breaker shared by every session of one collector.
// Sessions stay private per worker; only the failure accounting is shared.
//
// Configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
type Breaker struct {
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreaker creates a closed breaker.
func NewBreaker(name string) *Breaker {
	if name == "" {
		name = DefaultBreakerName
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: countsAsHealthy,
	})

	return &Breaker{cb: cb, name: name}
}

// Name returns the breaker's metric label.
func (b *Breaker) Name() string {
	return b.name
}

// State returns "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

// Wrap returns a session whose calls run through the breaker.
func (b *Breaker) Wrap(api API) API {
	return &breakerSession{api: api, breaker: b}
}

// IsRejected reports whether err is a breaker rejection rather than a
// failed request.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// countsAsHealthy reports whether err leaves the breaker's failure count
// untouched. Only transport errors and 5xx replies count against the server.
func countsAsHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrUnsuccessful) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode < http.StatusInternalServerError
	}
	return false
}

// execute wraps a Simple API call with circuit breaker protection
func (b *Breaker) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)

	if err != nil {
		if IsRejected(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, metrics.ResultRejected).Inc()
			logging.Debug().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, metrics.ResultFailure).Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, metrics.ResultSuccess).Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	return result, nil
}

type breakerSession struct {
	api     API
	breaker *Breaker
}

// Ensure breakerSession implements API
var _ API = (*breakerSession)(nil)

func (s *breakerSession) ListStations(ctx context.Context) ([]models.Station, error) {
	return castSlice[models.Station](s.breaker.execute(func() (any, error) {
		return s.api.ListStations(ctx)
	}))
}

func (s *breakerSession) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	return castSlice[models.Organization](s.breaker.execute(func() (any, error) {
		return s.api.ListOrganizations(ctx)
	}))
}

func (s *breakerSession) OnAirStatus(ctx context.Context, stationUUID string) (*models.StationStatus, error) {
	return castResult[models.StationStatus](s.breaker.execute(func() (any, error) {
		return s.api.OnAirStatus(ctx, stationUUID)
	}))
}

func (s *breakerSession) Close() {
	s.api.Close()
}

// castResult safely type-casts the circuit breaker result with error checking
func castResult[T any](result any, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func castSlice[T any](result any, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.([]T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
