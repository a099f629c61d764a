// Package library decodes the user-supplied library JSON file into the wire
// data model of spec.md §6, and builds the in-memory Module/Song object
// graph from it.
//
// JSON decoding itself is an explicitly out-of-core-scope collaborator
// (spec.md §1 calls it "just a deserialization step feeding the data
// model"); it is implemented with the standard library's encoding/json, the
// same choice every example repo that decodes JSON makes (no third-party
// JSON library appears anywhere in the example pack).
package library

import (
	"encoding/json"
	"fmt"
	"io"
)

// Library is the root of the JSON wire format: a flat list of single-file
// entries plus a list of named groups.
type Library struct {
	Single []FileInfo  `json:"single"`
	Groups []GroupInfo `json:"groups"`
}

// GroupInfo is a named collection of files sharing inheritable defaults.
type GroupInfo struct {
	Title             string   `json:"title"`
	Enabled           *bool    `json:"enabled,omitempty"`
	StreamingSafe     *bool    `json:"streaming_safe,omitempty"`
	PrimarySquareChan *int     `json:"primary_square_chan,omitempty"`
	Uses              []string `json:"uses,omitempty"`
	Items             []FileInfo `json:"items"`
}

// FileInfo describes one tracker module file, optionally containing multiple
// songs.
type FileInfo struct {
	Title             string     `json:"title"`
	Author            string     `json:"author,omitempty"`
	Enabled           *bool      `json:"enabled,omitempty"`
	StreamingSafe     *bool      `json:"streaming_safe,omitempty"`
	PrimarySquareChan *int       `json:"primary_square_chan,omitempty"`
	Uses              []string   `json:"uses,omitempty"`
	StartAddr         *HexUint16 `json:"start_addr,omitempty"`
	Data              string     `json:"data"`
	Songs             []SongInfo `json:"songs,omitempty"`
}

// SongInfo describes one song within a multi-song FileInfo.
type SongInfo struct {
	Number            int      `json:"number"`
	Title             string   `json:"title,omitempty"`
	Author            string   `json:"author,omitempty"`
	Enabled           *bool    `json:"enabled,omitempty"`
	StreamingSafe     *bool    `json:"streaming_safe,omitempty"`
	PrimarySquareChan *int     `json:"primary_square_chan,omitempty"`
	Uses              []string `json:"uses,omitempty"`
}

// Decode parses the library JSON format from r. When strict is true, unknown
// fields are rejected instead of ignored.
func Decode(r io.Reader, strict bool) (*Library, error) {
	dec := json.NewDecoder(r)
	if strict {
		dec.DisallowUnknownFields()
	}

	var lib Library
	if err := dec.Decode(&lib); err != nil {
		return nil, fmt.Errorf("decoding library: %w", err)
	}

	for i := range lib.Single {
		if lib.Single[i].Title == "" {
			return nil, fmt.Errorf("single entry %d: title is required", i)
		}
		if lib.Single[i].Data == "" {
			return nil, fmt.Errorf("single entry %d (%q): data is required", i, lib.Single[i].Title)
		}
	}
	for g := range lib.Groups {
		for i := range lib.Groups[g].Items {
			item := lib.Groups[g].Items[i]
			if item.Title == "" {
				return nil, fmt.Errorf("group %q item %d: title is required", lib.Groups[g].Title, i)
			}
			if item.Data == "" {
				return nil, fmt.Errorf("group %q item %d (%q): data is required", lib.Groups[g].Title, i, item.Title)
			}
		}
	}

	return &lib, nil
}
