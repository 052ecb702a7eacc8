// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package testinfra

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/zetta-collector/internal/config"
	"github.com/tomtom215/zetta-collector/internal/models"
)

// Test credentials accepted by a ZettaServer.
const (
	TestAPIKey   = "test-api-key"
	TestUsername = "monitor"
	TestPassword = "secret"
)

const onAirPrefix = "/1.0/StationScheduleLog/OnAir/Status/"

// ZettaRequest is a captured Simple API request.
type ZettaRequest struct {
	Path        string
	APIKey      string
	Username    string
	Password    string
	Accept      string
	ContentType string
}

// ZettaServer is a fake Zetta Simple API.
type ZettaServer struct {
	Server *httptest.Server

	mu           sync.Mutex
	stations     []models.Station
	orgs         []models.Organization
	statuses     map[string]models.StationStatus
	statusFail   map[string]int
	unsuccessful map[string]bool
	listFail     map[string]int
	requests     []ZettaRequest
	delay        time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

// NewZettaServer starts a fake server that is closed when the test ends.
func NewZettaServer(t *testing.T) *ZettaServer {
	t.Helper()

	zs := &ZettaServer{
		statuses:     make(map[string]models.StationStatus),
		statusFail:   make(map[string]int),
		unsuccessful: make(map[string]bool),
		listFail:     make(map[string]int),
	}
	zs.Server = httptest.NewServer(http.HandlerFunc(zs.handle))
	t.Cleanup(zs.Server.Close)
	return zs
}

// Station builds a roster entry.
func Station(uuid, callLetters string) models.Station {
	return models.Station{
		UUID:        uuid,
		Name:        callLetters + " FM",
		CallLetters: callLetters,
		Role:        "Primary",
	}
}

// Config returns a valid ZettaConfig pointing at the fake server.
func (zs *ZettaServer) Config() config.ZettaConfig {
	u, _ := url.Parse(zs.Server.URL)
	host, portStr, _ := net.SplitHostPort(u.Host)
	port, _ := strconv.Atoi(portStr)

	return config.ZettaConfig{
		Host:       host,
		Port:       port,
		Scheme:     "http",
		APIVersion: config.DefaultAPIVersion,
		APIKey:     TestAPIKey,
		Username:   TestUsername,
		Password:   TestPassword,
		Timeout:    config.DefaultRequestTimeout,
	}
}

// SetStations replaces the roster.
func (zs *ZettaServer) SetStations(stations ...models.Station) {
	zs.mu.Lock()
	defer zs.mu.Unlock()
	zs.stations = stations
}

// SetOrganizations replaces the organisation list.
func (zs *ZettaServer) SetOrganizations(orgs ...models.Organization) {
	zs.mu.Lock()
	defer zs.mu.Unlock()
	zs.orgs = orgs
}

// SetStatus sets the on-air status served for one station.
func (zs *ZettaServer) SetStatus(uuid string, status models.StationStatus) {
	zs.mu.Lock()
	defer zs.mu.Unlock()
	zs.statuses[uuid] = status
	delete(zs.statusFail, uuid)
	delete(zs.unsuccessful, uuid)
}

// FailStatus makes the station's status fetch return the HTTP status code.
func (zs *ZettaServer) FailStatus(uuid string, code int) {
	zs.mu.Lock()
	defer zs.mu.Unlock()
	zs.statusFail[uuid] = code
}

// FailStatusMarker makes the station's status fetch return 200 with a
// non-success responseType.
func (zs *ZettaServer) FailStatusMarker(uuid string) {
	zs.mu.Lock()
	defer zs.mu.Unlock()
	zs.unsuccessful[uuid] = true
}

// FailList makes a list endpoint ("Station" or "Organization") return code.
func (zs *ZettaServer) FailList(kind string, code int) {
	zs.mu.Lock()
	defer zs.mu.Unlock()
	zs.listFail[kind] = code
}

// SetDelay delays every status response, to make concurrency observable.
func (zs *ZettaServer) SetDelay(d time.Duration) {
	zs.mu.Lock()
	defer zs.mu.Unlock()
	zs.delay = d
}

// Requests returns a copy of every captured request.
func (zs *ZettaServer) Requests() []ZettaRequest {
	zs.mu.Lock()
	defer zs.mu.Unlock()
	out := make([]ZettaRequest, len(zs.requests))
	copy(out, zs.requests)
	return out
}

// StatusRequests returns the station UUIDs whose status was requested, in arrival order.
func (zs *ZettaServer) StatusRequests() []string {
	var ids []string
	for _, r := range zs.Requests() {
		if strings.HasPrefix(r.Path, onAirPrefix) {
			ids = append(ids, strings.TrimPrefix(r.Path, onAirPrefix))
		}
	}
	return ids
}

// CountPath returns how many requests hit path exactly.
func (zs *ZettaServer) CountPath(path string) int {
	n := 0
	for _, r := range zs.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

// MaxConcurrent returns the peak number of simultaneous status requests.
func (zs *ZettaServer) MaxConcurrent() int {
	return int(zs.maxInFlight.Load())
}

func (zs *ZettaServer) handle(w http.ResponseWriter, r *http.Request) {
	user, pass, _ := r.BasicAuth()

	zs.mu.Lock()
	zs.requests = append(zs.requests, ZettaRequest{
		Path:        r.URL.Path,
		APIKey:      r.Header.Get("APIKEY"),
		Username:    user,
		Password:    pass,
		Accept:      r.Header.Get("Accept"),
		ContentType: r.Header.Get("Content-Type"),
	})
	zs.mu.Unlock()

	if r.Header.Get("APIKEY") != TestAPIKey || user != TestUsername || pass != TestPassword {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch {
	case r.URL.Path == "/1.0/Station/list":
		zs.serveList(w, "Station", func() any { return zs.stations })
	case r.URL.Path == "/1.0/Organization/list":
		zs.serveList(w, "Organization", func() any { return zs.orgs })
	case strings.HasPrefix(r.URL.Path, onAirPrefix):
		zs.serveStatus(w, strings.TrimPrefix(r.URL.Path, onAirPrefix))
	default:
		http.NotFound(w, r)
	}
}

func (zs *ZettaServer) serveList(w http.ResponseWriter, kind string, data func() any) {
	zs.mu.Lock()
	code, failing := zs.listFail[kind]
	payload := data()
	zs.mu.Unlock()

	if failing {
		http.Error(w, kind+" list unavailable", code)
		return
	}
	writeEnvelope(w, payload, models.ResponseTypeSuccess)
}

func (zs *ZettaServer) serveStatus(w http.ResponseWriter, uuid string) {
	n := zs.inFlight.Add(1)
	defer zs.inFlight.Add(-1)
	for {
		peak := zs.maxInFlight.Load()
		if n <= peak || zs.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	zs.mu.Lock()
	delay := zs.delay
	code, failing := zs.statusFail[uuid]
	bad := zs.unsuccessful[uuid]
	status, known := zs.statuses[uuid]
	zs.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	switch {
	case failing:
		http.Error(w, "status unavailable", code)
	case bad:
		writeEnvelope(w, nil, "failure")
	case !known:
		http.Error(w, "unknown station", http.StatusNotFound)
	default:
		writeEnvelope(w, status, models.ResponseTypeSuccess)
	}
}

func writeEnvelope(w http.ResponseWriter, data any, responseType string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.Envelope[any]{
		DataObject:   data,
		ResponseType: responseType,
		SyncCounter:  1,
	})
}
