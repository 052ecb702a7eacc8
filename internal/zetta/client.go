// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

/*
client.go - RCS Zetta Simple API Client

A Client is one session against the Simple API. It owns its HTTP transport,
so concurrent poll workers never share connection state. Every response is
wrapped in an envelope whose responseType must be "success".
*/

package zetta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/zetta-collector/internal/config"
	"github.com/tomtom215/zetta-collector/internal/logging"
	"github.com/tomtom215/zetta-collector/internal/metrics"
	"github.com/tomtom215/zetta-collector/internal/models"
)

// Simple API endpoints, relative to the versioned base URL.
const (
	EndpointStationList      = "/Station/list"
	EndpointOrganizationList = "/Organization/list"
	EndpointOnAirStatus      = "/StationScheduleLog/OnAir/Status"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// API is the set of Simple API calls the collector makes. Client and the
// breaker-wrapped session both implement it.
type API interface {
	ListStations(ctx context.Context) ([]models.Station, error)
	ListOrganizations(ctx context.Context) ([]models.Organization, error)
	OnAirStatus(ctx context.Context, stationUUID string) (*models.StationStatus, error)
	Close()
}

// Ensure Client implements API
var _ API = (*Client)(nil)

// Client is a single Simple API session.
type Client struct {
	baseURL  string
	apiKey   string
	username string
	password string

	httpClient *http.Client
	transport  *http.Transport
	limiter    *rate.Limiter

	closeOnce sync.Once
	closed    atomic.Bool
}

// NewClient opens a session with its own connection pool.
// The configuration is not validated here; see config.ZettaConfig.Validate.
func NewClient(cfg *config.ZettaConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	c := &Client{
		baseURL:   cfg.BaseURL(),
		apiKey:    cfg.APIKey,
		username:  cfg.Username,
		password:  cfg.Password,
		transport: transport,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}

	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return c
}

// BaseURL returns the versioned base URL of the session.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListStations retrieves the station roster.
func (c *Client) ListStations(ctx context.Context) ([]models.Station, error) {
	return getData[[]models.Station](ctx, c, EndpointStationList, EndpointStationList)
}

// ListOrganizations retrieves every organisation and its station membership.
func (c *Client) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	return getData[[]models.Organization](ctx, c, EndpointOrganizationList, EndpointOrganizationList)
}

// OnAirStatus retrieves the live on-air status of one station.
func (c *Client) OnAirStatus(ctx context.Context, stationUUID string) (*models.StationStatus, error) {
	if stationUUID == "" {
		return nil, errors.New("station uuid is required")
	}
	path := EndpointOnAirStatus + "/" + url.PathEscape(stationUUID)
	status, err := getData[models.StationStatus](ctx, c, path, EndpointOnAirStatus)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Close releases the session's idle connections. Calls after the first are
// no-ops, and requests on a closed session fail with ErrClosed.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.transport.CloseIdleConnections()
	})
}

// getData performs a GET against path and unwraps the envelope.
// label is the endpoint name used for metrics.
func getData[T any](ctx context.Context, c *Client, path, label string) (T, error) {
	var zero T

	env, err := doEnvelope[T](ctx, c, path)
	metrics.RecordZettaRequest(label, err)
	if err != nil {
		return zero, err
	}
	return env.DataObject, nil
}

func doEnvelope[T any](ctx context.Context, c *Client, path string) (*models.Envelope[T], error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("zetta %s: rate limiter: %w", path, err)
		}
	}

	resp, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("zetta %s request failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	var env models.Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode zetta %s response: %w", path, err)
	}

	if !env.Succeeded() {
		return nil, &ResponseTypeError{Endpoint: path, ResponseType: env.ResponseType}
	}

	return &env, nil
}

func (c *Client) doRequest(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("APIKEY", c.apiKey)
	req.SetBasicAuth(c.username, c.password)

	logging.Debug().Str("url", req.URL.String()).Msg("[zetta] GET")

	return c.httpClient.Do(req)
}

// readBodyForError reads a limited amount of the response body for error messages
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
