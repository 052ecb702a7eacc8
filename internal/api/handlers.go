// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/zetta-collector/internal/collector"
	"github.com/tomtom215/zetta-collector/internal/logging"
	"github.com/tomtom215/zetta-collector/internal/models"
)

// Health status values.
const (
	HealthHealthy  = "healthy"
	HealthStarting = "starting"
)

// StatusSource is the part of collector.Service the handlers read.
type StatusSource interface {
	Snapshot() collector.Snapshot
	TriggerPoll(ctx context.Context) []models.Document
	Stations() []models.Station
	Host() string
}

// Handler holds the HTTP handlers.
type Handler struct {
	source    StatusSource
	startTime time.Time
}

// NewHandler creates handlers backed by source.
func NewHandler(source StatusSource) *Handler {
	return &Handler{
		source:    source,
		startTime: time.Now(),
	}
}

// Documents returns the latest snapshot's documents.
func (h *Handler) Documents(w http.ResponseWriter, r *http.Request) {
	snap := h.source.Snapshot()
	if !snap.Ready() {
		respondError(w, r, http.StatusServiceUnavailable, CodeNotReady, "No poll cycle has completed yet", nil)
		return
	}

	respondSuccess(w, r, documentsOrEmpty(snap.Documents), pollMetadata(len(snap.Documents), snap.PolledAt, snap.Duration))
}

// Poll runs a cycle synchronously and returns its documents. A cycle already
// in progress finishes first.
func (h *Handler) Poll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	// A disconnecting client must not cut the cycle short and store a
	// partial snapshot.
	docs := h.source.TriggerPoll(context.WithoutCancel(r.Context()))

	if err := r.Context().Err(); err != nil {
		// The client went away; the cycle still completed and was stored.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("[api] Poll request cancelled")
		if errors.Is(err, context.DeadlineExceeded) {
			respondError(w, r, http.StatusGatewayTimeout, CodePollCancelled, "Poll cycle exceeded the request timeout", nil)
			return
		}
		respondError(w, r, http.StatusServiceUnavailable, CodePollCancelled, "Poll request cancelled", nil)
		return
	}

	logging.Ctx(r.Context()).Info().Int("documents", len(docs)).Msg("[api] On-demand poll complete")
	respondSuccess(w, r, documentsOrEmpty(docs), pollMetadata(len(docs), start, time.Since(start)))
}

// Stations lists the station directory.
func (h *Handler) Stations(w http.ResponseWriter, r *http.Request) {
	stations := h.source.Stations()

	entries := make([]models.StationEntry, 0, len(stations))
	for _, s := range stations {
		groups := s.Groups
		if groups == nil {
			groups = []string{}
		}
		entries = append(entries, models.StationEntry{
			UUID:        s.UUID,
			Name:        s.Name,
			CallLetters: s.CallLetters,
			Role:        s.Role,
			InternalID:  s.InternalID,
			Groups:      groups,
		})
	}

	respondSuccess(w, r, entries, models.Metadata{Count: len(entries)})
}

// Health reports "healthy" once a poll cycle has completed and "starting"
// (503) before that.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.source.Snapshot()

	health := models.HealthStatus{
		Status:        HealthStarting,
		Host:          h.source.Host(),
		Stations:      len(h.source.Stations()),
		LastDocuments: len(snap.Documents),
		Cycles:        snap.Cycles,
		Uptime:        time.Since(h.startTime).Seconds(),
	}
	status := http.StatusServiceUnavailable
	if snap.Ready() {
		health.Status = HealthHealthy
		polled := snap.PolledAt.UTC()
		health.LastPoll = &polled
		status = http.StatusOK
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// NotFound is the JSON 404 handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, CodeNotFound, "Resource not found", nil)
}

// MethodNotAllowed is the JSON 405 handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
}

func documentsOrEmpty(docs []models.Document) []models.Document {
	if docs == nil {
		return []models.Document{}
	}
	return docs
}
