// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

// Package catalog holds the movie collection snapshot and the pure derived
// views computed over it (popular, latest, by-genre, search, similar).
//
// The store fetches the full collection from the remote service and serves
// it from memory. Remote failure never surfaces to readers: derivations
// degrade to empty results instead.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviehub/moviehub/internal/metrics"
	"github.com/moviehub/moviehub/internal/models"
	"github.com/moviehub/moviehub/internal/remote"
)

// Store caches the normalized movie collection fetched from the remote
// service. It is safe for concurrent use.
type Store struct {
	client remote.ClientInterface
	logger zerolog.Logger
	ttl    time.Duration

	mu        sync.RWMutex
	movies    []models.Movie
	fetchedAt time.Time
	fetched   bool
}

// NewStore creates a catalog store. ttl bounds how long a snapshot is
// served before an on-demand re-fetch is attempted; zero means a snapshot
// never goes stale on its own (background refresh only).
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(client remote.ClientInterface, ttl time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		client: client,
		logger: logger.With().Str("component", "catalog").Logger(),
		ttl:    ttl,
	}
}

// Snapshot returns the current movie collection, fetching it on first use
// or when the cached copy is stale. It never returns an error: when the
// remote service is unavailable the last good snapshot is served, or an
// empty collection when there has never been one.
func (s *Store) Snapshot(ctx context.Context) []models.Movie {
	s.mu.RLock()
	fresh := s.fetched && (s.ttl <= 0 || time.Since(s.fetchedAt) < s.ttl)
	movies := s.movies
	s.mu.RUnlock()

	if fresh {
		return movies
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog unavailable, serving last known snapshot")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.movies == nil {
		return []models.Movie{}
	}
	return s.movies
}

// Refresh re-fetches the collection from the remote service. The cached
// snapshot is replaced only on success.
func (s *Store) Refresh(ctx context.Context) error {
	movies, err := s.client.Movies(ctx)
	if err != nil {
		metrics.CatalogRefreshes.WithLabelValues("failure").Inc()
		return err
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	s.mu.Lock()
	s.movies = movies
	s.fetchedAt = time.Now()
	s.fetched = true
	s.mu.Unlock()

	metrics.CatalogRefreshes.WithLabelValues("success").Inc()
	metrics.CatalogMovies.Set(float64(len(movies)))
	s.logger.Debug().Int("movies", len(movies)).Msg("catalog snapshot refreshed")

	return nil
}

// MovieByID resolves a single movie, preferring the direct endpoint and
// falling back to a linear scan of the full collection when the endpoint
// fails. Returns nil when the movie cannot be found anywhere.
func (s *Store) MovieByID(ctx context.Context, movieID string) *models.Movie {
	movie, err := s.client.Movie(ctx, movieID)
	if err == nil && movie != nil && movie.ID != "" {
		return movie
	}
	if err != nil {
		s.logger.Debug().Err(err).Str("movie_id", movieID).Msg("direct movie endpoint failed, scanning collection")
	}

	for _, m := range s.Snapshot(ctx) {
		if m.ID == movieID {
			found := m
			return &found
		}
	}
	return nil
}
