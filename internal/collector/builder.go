// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package collector

import (
	"sort"

	"github.com/tomtom215/zetta-collector/internal/models"
)

// BuildDocuments joins statuses with the directory into one Document per
// fetched station, sorted by station UUID. Statuses for stations not in the
// directory are ignored.
func BuildDocuments(host string, dir *Directory, statuses StatusMap) []models.Document {
	ids := make([]string, 0, len(statuses))
	for id := range statuses {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]models.Document, 0, len(ids))
	for _, id := range ids {
		station, ok := dir.Station(id)
		status := statuses[id]
		if !ok || status == nil {
			continue
		}
		docs = append(docs, buildDocument(host, &station, status))
	}
	return docs
}

func buildDocument(host string, station *models.Station, status *models.StationStatus) models.Document {
	fields := models.Fields{
		UUID:        station.UUID,
		Name:        station.Name,
		CallLetters: station.CallLetters,
		Role:        station.Role,
		InternalID:  station.InternalID,
		Groups:      station.Groups,
		Mode:        status.Mode,
		Status:      status.Status,
	}
	if fields.Groups == nil {
		fields.Groups = []string{}
	}
	if current := status.Current(); current != nil {
		fields.SetCurrent(current)
	}

	return models.Document{
		Host:   host,
		Name:   models.DocumentName,
		Fields: fields,
	}
}
