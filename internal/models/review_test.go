// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestReviewFlexibleUnmarshal(t *testing.T) {
	data := []byte(`{"movieId": 7, "userId": "42", "rating": "4", "comment": "good", "displayName": "Ana"}`)

	var r Review
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if r.MovieID != "7" || r.UserID != "42" {
		t.Errorf("ids = %q/%q, want 7/42", r.MovieID, r.UserID)
	}
	if r.Rating != 4 {
		t.Errorf("rating = %d, want 4", r.Rating)
	}
	if r.DisplayName != "Ana" || r.Comment != "good" {
		t.Errorf("got %+v", r)
	}
}

func TestReviewUnusableRatingDegradesToZero(t *testing.T) {
	var r Review
	if err := json.Unmarshal([]byte(`{"movieId": "1", "rating": "lots"}`), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r.Rating != 0 {
		t.Errorf("rating = %d, want 0", r.Rating)
	}
}

func TestUserRecordFlexibleUnmarshal(t *testing.T) {
	data := []byte(`{"id": 99, "displayName": "Ana", "email": "ana@example.com", "token": "tok"}`)

	var u UserRecord
	if err := json.Unmarshal(data, &u); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if u.ID != "99" || u.Email != "ana@example.com" || u.Token != "tok" {
		t.Errorf("got %+v", u)
	}
}
