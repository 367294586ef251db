// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package models

import (
	"time"

	"github.com/goccy/go-json"
)

// Review is a single user's rating and comment for a movie. The remote
// service enforces upsert semantics: at most one review per (movie, user)
// pair.
type Review struct {
	MovieID     string    `json:"movieId"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type reviewWire struct {
	MovieID     json.RawMessage `json:"movieId"`
	UserID      json.RawMessage `json:"userId"`
	DisplayName string          `json:"displayName"`
	Rating      json.RawMessage `json:"rating"`
	Comment     string          `json:"comment"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// UnmarshalJSON tolerates numeric identifiers and ratings delivered as
// strings, same normalization rules as Movie.
func (r *Review) UnmarshalJSON(data []byte) error {
	var w reviewWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	r.MovieID = flexString(w.MovieID)
	r.UserID = flexString(w.UserID)
	r.DisplayName = w.DisplayName
	r.Rating = flexInt(w.Rating)
	r.Comment = w.Comment
	r.CreatedAt = w.CreatedAt

	return nil
}

// RatingSummary is the derived mean rating and review count for a movie.
// It is recomputed on demand and never persisted.
type RatingSummary struct {
	MovieID string  `json:"movieId"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// WatchedStatus is the remote service's response to watched membership
// checks and toggles.
type WatchedStatus struct {
	Watched bool   `json:"watched"`
	Message string `json:"message,omitempty"`
}

// UserRecord is a user profile as returned by the remote service.
type UserRecord struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Token       string `json:"token,omitempty"`
}

type userRecordWire struct {
	ID          json.RawMessage `json:"id"`
	DisplayName string          `json:"displayName"`
	Email       string          `json:"email"`
	Token       string          `json:"token"`
}

// UnmarshalJSON tolerates numeric user identifiers.
func (u *UserRecord) UnmarshalJSON(data []byte) error {
	var w userRecordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	u.ID = flexString(w.ID)
	u.DisplayName = w.DisplayName
	u.Email = w.Email
	u.Token = w.Token

	return nil
}
