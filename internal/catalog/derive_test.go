// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package catalog

import (
	"testing"

	"github.com/moviehub/moviehub/internal/models"
)

func sampleCollection() []models.Movie {
	return []models.Movie{
		{
			ID:          "a",
			Title:       "Alpha",
			Genre:       "Action, Drama",
			ReleaseYear: 2010,
			IMDbRating:  8.5,
			Producer:    "Jane Vaughn",
			Cast:        []models.CastMember{{Name: "Omar Reyes"}},
		},
		{
			ID:          "b",
			Title:       "Bravo",
			Genre:       "Drama",
			ReleaseYear: 2020,
			IMDbRating:  6.0,
			Producer:    "Chris Park",
			Cast:        []models.CastMember{{Name: "Mina Kwon"}},
		},
		{
			ID:          "c",
			Title:       "Charlie",
			Genre:       "Comedy",
			ReleaseYear: 2015,
			IMDbRating:  9.0,
			Producer:    "Jane Vaughn",
			Cast:        []models.CastMember{{Name: "Omar Reyes"}, {Name: "Lena Fox"}},
		},
	}
}

func movieIDs(movies []models.Movie) []string {
	ids := make([]string, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}

func assertIDs(t *testing.T, got []models.Movie, want ...string) {
	t.Helper()
	ids := movieIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

func TestPopular(t *testing.T) {
	movies := sampleCollection()

	assertIDs(t, Popular(movies, 2), "c", "a")
	assertIDs(t, Popular(movies, 10), "c", "a", "b")
	assertIDs(t, Popular(movies, 0))
}

func TestPopularExcludesUnrated(t *testing.T) {
	movies := append(sampleCollection(), models.Movie{ID: "d", Title: "Delta"})

	got := Popular(movies, 10)
	for _, m := range got {
		if m.ID == "d" {
			t.Error("movie without a rating should not appear in popular")
		}
	}
}

func TestPopularStableOnTies(t *testing.T) {
	movies := []models.Movie{
		{ID: "x", IMDbRating: 7.0},
		{ID: "y", IMDbRating: 7.0},
		{ID: "z", IMDbRating: 8.0},
	}

	assertIDs(t, Popular(movies, 3), "z", "x", "y")
}

func TestLatest(t *testing.T) {
	movies := sampleCollection()

	assertIDs(t, Latest(movies, 2), "b", "c")
	assertIDs(t, Latest(movies, 10), "b", "c", "a")
}

func TestLatestExcludesUndated(t *testing.T) {
	movies := append(sampleCollection(), models.Movie{ID: "d", IMDbRating: 9.9})

	got := Latest(movies, 10)
	for _, m := range got {
		if m.ID == "d" {
			t.Error("movie without a release year should not appear in latest")
		}
	}
}

func TestByGenre(t *testing.T) {
	movies := sampleCollection()

	assertIDs(t, ByGenre(movies, "Drama"), "a", "b")
	assertIDs(t, ByGenre(movies, "drama"), "a", "b")
	assertIDs(t, ByGenre(movies, "com"), "c")
	assertIDs(t, ByGenre(movies, ""))
	assertIDs(t, ByGenre(movies, "  "))
	assertIDs(t, ByGenre(movies, "Western"))
}

func TestCategories(t *testing.T) {
	got := Categories(sampleCollection())
	want := []string{"Action", "Drama", "Comedy"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSearch(t *testing.T) {
	movies := sampleCollection()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match", "alpha", []string{"a"}},
		{"title substring", "ravo", []string{"b"}},
		{"producer match", "vaughn", []string{"a", "c"}},
		{"genre match", "comedy", []string{"c"}},
		{"cast match", "omar", []string{"a", "c"}},
		{"no match", "zeta", nil},
		{"empty query", "", nil},
		{"whitespace query", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertIDs(t, Search(movies, tt.query), tt.want...)
		})
	}
}

func TestSimilar(t *testing.T) {
	movies := sampleCollection()

	assertIDs(t, Similar(movies, &movies[0], 6), "b")
	assertIDs(t, Similar(movies, &movies[2], 6))
	assertIDs(t, Similar(movies, nil, 6))
	assertIDs(t, Similar(movies, &movies[0], 0))
}

func TestSimilarRespectsLimit(t *testing.T) {
	movies := []models.Movie{
		{ID: "t", Genre: "Drama"},
		{ID: "1", Genre: "Drama"},
		{ID: "2", Genre: "Drama"},
		{ID: "3", Genre: "Drama"},
	}

	assertIDs(t, Similar(movies, &movies[0], 2), "1", "2")
}

func TestDirectors(t *testing.T) {
	got := Directors(sampleCollection())
	want := []string{"Chris Park", "Jane Vaughn"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestByDirector(t *testing.T) {
	movies := sampleCollection()

	assertIDs(t, ByDirector(movies, "vaughn"), "a", "c")
	assertIDs(t, ByDirector(movies, "Chris Park"), "b")
	assertIDs(t, ByDirector(movies, ""))
}

func TestActors(t *testing.T) {
	got := Actors(sampleCollection())
	want := []string{"Lena Fox", "Mina Kwon", "Omar Reyes"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestByActor(t *testing.T) {
	movies := sampleCollection()

	assertIDs(t, ByActor(movies, "omar"), "a", "c")
	assertIDs(t, ByActor(movies, "fox"), "c")
	assertIDs(t, ByActor(movies, ""))
}
