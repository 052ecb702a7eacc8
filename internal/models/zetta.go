// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package models

// ResponseTypeSuccess is the responseType marker of a successful Simple API call.
const ResponseTypeSuccess = "success"

// Envelope wraps every Zetta Simple API response body.
//
//	{"dataObject": [...], "responseType": "success", "syncCounter": 1234}
type Envelope[T any] struct {
	DataObject   T      `json:"dataObject"`
	ResponseType string `json:"responseType"`
	SyncCounter  int64  `json:"syncCounter"`
}

// Succeeded reports whether the envelope carries the success marker.
func (e *Envelope[T]) Succeeded() bool {
	return e.ResponseType == ResponseTypeSuccess
}

// Station is one entry of GET /Station/list.
//
// Groups is not part of the wire format. It is filled with the names of the
// organisations the station belongs to while the directory is built, and is
// never nil afterwards.
type Station struct {
	UUID        string   `json:"uuid"`
	Name        string   `json:"name"`
	CallLetters string   `json:"callLetters"`
	Role        string   `json:"role"`
	InternalID  int      `json:"internalId"`
	Groups      []string `json:"-"`
}

// Organization is one entry of GET /Organization/list.
// Only used while the directory is built.
type Organization struct {
	UUID         string   `json:"uuid"`
	Name         string   `json:"name"`
	StationUUIDs []string `json:"stationUUIDCollection"`
}

// StationStatus is the body of GET /StationScheduleLog/OnAir/Status/{uuid}.
// Events[0], when present, is the item currently on air.
type StationStatus struct {
	Mode   string         `json:"mode"`
	Status string         `json:"status"`
	Events []PlaylistItem `json:"onAirStatusLogEvents"`
}

// Current returns the on-air item, or nil when the log is empty.
func (s *StationStatus) Current() *PlaylistItem {
	if len(s.Events) == 0 {
		return nil
	}
	return &s.Events[0]
}

// PlaylistItem is one on-air log event.
type PlaylistItem struct {
	PlayPosition    string `json:"playPosition"`
	Duration        string `json:"duration"`
	DurationToSegue string `json:"durationToSegue"`
	UUID            string `json:"uuid"`
	Type            string `json:"type"`
	AssetType       string `json:"assetType"`
	ChainType       string `json:"chainType"`
	Artist          string `json:"artist"`
	Title           string `json:"title"`
	StatusCode      string `json:"statusCode"`
	AssetTypeName   string `json:"assetTypeName"`
	EditCode        string `json:"editCode"`
	AirTime         string `json:"airTime"`
}
