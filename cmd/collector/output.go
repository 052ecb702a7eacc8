// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"

	"github.com/tomtom215/zetta-collector/internal/models"
)

// Output formats for -once.
const (
	formatJSON  = "json"
	formatTable = "table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func writeDocuments(w io.Writer, format string, docs []models.Document) error {
	switch format {
	case formatTable:
		_, err := fmt.Fprintln(w, renderTable(docs))
		return err
	case formatJSON:
		return writeJSON(w, docs)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeJSON writes docs as one JSON array. An empty batch is [].
func writeJSON(w io.Writer, docs []models.Document) error {
	if docs == nil {
		docs = []models.Document{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("failed to encode documents: %w", err)
	}
	return nil
}

// renderTable lays docs out as name | callLetters | status | statusCode.
// statusCode is "-" for a station with an empty on-air log.
func renderTable(docs []models.Document) string {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		code := "-"
		if d.Fields.CurrentStatusCode != nil {
			code = *d.Fields.CurrentStatusCode
		}
		rows = append(rows, []string{d.Fields.Name, d.Fields.CallLetters, d.Fields.Status, code})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("name", "callLetters", "status", "statusCode").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}
