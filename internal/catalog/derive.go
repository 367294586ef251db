// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package catalog

import (
	"sort"
	"strings"

	"github.com/moviehub/moviehub/internal/models"
)

// Derived views are pure functions over a collection snapshot. None of them
// mutate their input; ordering ties are broken by original collection order
// (stable sort).

// Popular returns up to n movies with a defined rating, sorted by rating
// descending.
func Popular(movies []models.Movie, n int) []models.Movie {
	rated := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if m.IMDbRating > 0 {
			rated = append(rated, m)
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].IMDbRating > rated[j].IMDbRating
	})

	return truncate(rated, n)
}

// Latest returns up to n movies with a defined release year, sorted by year
// descending.
func Latest(movies []models.Movie, n int) []models.Movie {
	dated := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if m.ReleaseYear > 0 {
			dated = append(dated, m)
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].ReleaseYear > dated[j].ReleaseYear
	})

	return truncate(dated, n)
}

// ByGenre returns movies whose genre token set contains a case-insensitive
// substring match of tag, preserving collection order.
func ByGenre(movies []models.Movie, tag string) []models.Movie {
	matched := make([]models.Movie, 0)
	for _, m := range movies {
		if m.MatchesGenre(tag) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Categories returns the deduplicated genre tokens across the collection in
// first-seen order.
func Categories(movies []models.Movie) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)

	for _, m := range movies {
		for _, token := range m.GenreTokens() {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			categories = append(categories, token)
		}
	}

	return categories
}

// Search returns movies matching query as a case-insensitive substring of
// the title, the producer, the genre string, or any cast member's name.
// An empty or whitespace-only query yields an empty result, never the full
// catalog.
func Search(movies []models.Movie, query string) []models.Movie {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return []models.Movie{}
	}

	matched := make([]models.Movie, 0)
	for _, m := range movies {
		if matchesSearch(&m, term) {
			matched = append(matched, m)
		}
	}
	return matched
}

func matchesSearch(m *models.Movie, term string) bool {
	if strings.Contains(strings.ToLower(m.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Producer), term) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Genre), term) {
		return true
	}
	for _, member := range m.Cast {
		if strings.Contains(strings.ToLower(member.Name), term) {
			return true
		}
	}
	return false
}

// Similar returns up to limit movies sharing at least one genre token with
// target, excluding target itself, in collection order. There is no ranking
// by overlap count.
func Similar(movies []models.Movie, target *models.Movie, limit int) []models.Movie {
	if target == nil || limit <= 0 {
		return []models.Movie{}
	}

	similar := make([]models.Movie, 0, limit)
	for _, m := range movies {
		if m.ID == target.ID {
			continue
		}
		if target.SharesGenreWith(&m) {
			similar = append(similar, m)
			if len(similar) == limit {
				break
			}
		}
	}
	return similar
}

// Directors returns the sorted set of producer names across the collection.
func Directors(movies []models.Movie) []string {
	seen := make(map[string]struct{})
	directors := make([]string, 0)

	for _, m := range movies {
		name := strings.TrimSpace(m.Producer)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		directors = append(directors, name)
	}

	sort.Strings(directors)
	return directors
}

// ByDirector returns movies whose producer name contains name as a
// case-insensitive substring.
func ByDirector(movies []models.Movie, name string) []models.Movie {
	term := strings.ToLower(strings.TrimSpace(name))
	if term == "" {
		return []models.Movie{}
	}

	matched := make([]models.Movie, 0)
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Producer), term) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Actors returns the sorted set of cast member names across the collection.
func Actors(movies []models.Movie) []string {
	seen := make(map[string]struct{})
	actors := make([]string, 0)

	for _, m := range movies {
		for _, member := range m.Cast {
			name := strings.TrimSpace(member.Name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			actors = append(actors, name)
		}
	}

	sort.Strings(actors)
	return actors
}

// ByActor returns movies with a cast member whose name contains name as a
// case-insensitive substring.
func ByActor(movies []models.Movie, name string) []models.Movie {
	term := strings.ToLower(strings.TrimSpace(name))
	if term == "" {
		return []models.Movie{}
	}

	matched := make([]models.Movie, 0)
	for _, m := range movies {
		for _, member := range m.Cast {
			if strings.Contains(strings.ToLower(member.Name), term) {
				matched = append(matched, m)
				break
			}
		}
	}
	return matched
}

func truncate(movies []models.Movie, n int) []models.Movie {
	if n < 0 {
		n = 0
	}
	if len(movies) > n {
		return movies[:n]
	}
	return movies
}
