// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package models

// DocumentName is the fixed source tag of every Document.
const DocumentName = "zetta"

// Document is one station's status record for the indexing pipeline.
//
//	{
//	  "host": "zetta01",
//	  "name": "zetta",
//	  "fields": {"s_uuid": "...", "as_groups": ["Group A"], "s_mode": "Auto", ...}
//	}
type Document struct {
	Host   string `json:"host"`
	Name   string `json:"name"`
	Fields Fields `json:"fields"`
}

// Fields is the sparse field set of a Document. The key prefix encodes the
// value type (s_ string, i_ integer, as_ string array).
//
// The five Current* fields are either all set or all nil; they are nil when
// the station's on-air log was empty.
type Fields struct {
	UUID        string   `json:"s_uuid"`
	Name        string   `json:"s_name"`
	CallLetters string   `json:"s_callLetters"`
	Role        string   `json:"s_role"`
	InternalID  int      `json:"i_internalId"`
	Groups      []string `json:"as_groups"`
	Mode        string   `json:"s_mode"`
	Status      string   `json:"s_status"`

	CurrentTitle      *string `json:"s_current_title,omitempty"`
	CurrentStatusCode *string `json:"s_current_status_code,omitempty"`
	CurrentArtist     *string `json:"s_current_artist,omitempty"`
	CurrentChainType  *string `json:"s_current_chainType,omitempty"`
	CurrentAssetType  *string `json:"s_current_assetType,omitempty"`
}

// HasCurrent reports whether the on-air fields are populated.
func (f *Fields) HasCurrent() bool {
	return f.CurrentTitle != nil
}

// SetCurrent copies the on-air fields from item.
func (f *Fields) SetCurrent(item *PlaylistItem) {
	title, code, artist, chain, asset := item.Title, item.StatusCode, item.Artist, item.ChainType, item.AssetType
	f.CurrentTitle = &title
	f.CurrentStatusCode = &code
	f.CurrentArtist = &artist
	f.CurrentChainType = &chain
	f.CurrentAssetType = &asset
}
