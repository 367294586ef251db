// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

// Package models defines the shared data types exchanged with the remote
// MovieHub service and the normalization boundary that turns the service's
// loosely shaped records into fully typed values.
//
// Normalization happens exactly once, inside UnmarshalJSON: downstream code
// never re-checks field shape. The remote service is known to deliver
//
//   - numeric or string identifiers,
//   - releaseYear as a string or a number,
//   - gallery as a JSON array, a JSON-encoded string, or nothing at all,
//
// and all of those arrive here as the strict Movie schema.
package models

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// CastMember is a single entry in a movie's ordered cast list.
type CastMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Movie is a fully normalized catalog record.
//
// Zero values carry meaning for optional fields: ReleaseYear == 0 means the
// year is undefined, IMDbRating == 0 means the rating is undefined. Derived
// views filter on those before sorting.
type Movie struct {
	ID          string       `json:"id"`
	Title       string       `json:"movieName"`
	Description string       `json:"description"`
	ReleaseYear int          `json:"releaseYear"`
	IMDbRating  float64      `json:"imdbRating"`
	Producer    string       `json:"producer"`
	Genre       string       `json:"genre"`
	PosterURL   string       `json:"posterUrl"`
	BackdropURL string       `json:"backdropUrl"`
	TrailerURL  string       `json:"trailerUrl"`
	Cast        []CastMember `json:"cast"`
	Gallery     []string     `json:"gallery"`
}

// movieWire mirrors Movie with loosely typed fields for decoding.
type movieWire struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"movieName"`
	Description string          `json:"description"`
	ReleaseYear json.RawMessage `json:"releaseYear"`
	IMDbRating  json.RawMessage `json:"imdbRating"`
	Producer    string          `json:"producer"`
	Genre       string          `json:"genre"`
	PosterURL   string          `json:"posterUrl"`
	BackdropURL string          `json:"backdropUrl"`
	TrailerURL  string          `json:"trailerUrl"`
	Cast        []CastMember    `json:"cast"`
	Gallery     json.RawMessage `json:"gallery"`
}

// UnmarshalJSON decodes a movie record from the remote service, coercing the
// known malformed fields into their strict shapes. Unusable optional fields
// are discarded silently; a decode error is only returned when the record
// itself is not an object.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var w movieWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	m.ID = flexString(w.ID)
	m.Title = w.Title
	m.Description = w.Description
	m.ReleaseYear = flexInt(w.ReleaseYear)
	m.IMDbRating = flexFloat(w.IMDbRating)
	m.Producer = w.Producer
	m.Genre = w.Genre
	m.PosterURL = w.PosterURL
	m.BackdropURL = w.BackdropURL
	m.TrailerURL = w.TrailerURL
	m.Cast = w.Cast
	m.Gallery = normalizeGallery(w.Gallery)

	return nil
}

// GenreTokens splits the comma-separated genre string into trimmed tokens.
// Empty tokens are dropped. The genre field is always consumed through this
// method, never re-split ad hoc.
func (m *Movie) GenreTokens() []string {
	if m.Genre == "" {
		return nil
	}

	parts := strings.Split(m.Genre, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// MatchesGenre reports whether any genre token contains tag as a
// case-insensitive substring.
func (m *Movie) MatchesGenre(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}

	for _, token := range m.GenreTokens() {
		if strings.Contains(strings.ToLower(token), tag) {
			return true
		}
	}
	return false
}

// SharesGenreWith reports whether the two movies have at least one genre
// token in common. Token comparison is exact after trimming.
func (m *Movie) SharesGenreWith(other *Movie) bool {
	mine := m.GenreTokens()
	if len(mine) == 0 {
		return false
	}

	set := make(map[string]struct{}, len(mine))
	for _, t := range mine {
		set[t] = struct{}{}
	}

	for _, t := range other.GenreTokens() {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// normalizeGallery coerces the gallery field into an ordered list of URIs.
// The remote service is known to deliver the gallery as a JSON array, as a
// JSON-encoded string holding an array, or not at all. Anything undecodable
// degrades to an empty list without surfacing an error.
func normalizeGallery(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}

	// Encoded-string form: the field is a string whose contents are JSON.
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if err := json.Unmarshal([]byte(encoded), &list); err == nil && list != nil {
			return list
		}
	}

	return []string{}
}

// flexString decodes a JSON string or number into a string. Identifiers from
// the remote service arrive in both shapes.
func flexString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

// flexInt decodes a JSON number or numeric string into an int, returning 0
// for anything unusable.
func flexInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var i int
	if err := json.Unmarshal(raw, &i); err == nil {
		return i
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i
		}
	}

	return 0
}

// flexFloat decodes a JSON number or numeric string into a float64, returning
// 0 for anything unusable.
func flexFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}

	return 0
}
