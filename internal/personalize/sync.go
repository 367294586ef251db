// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

// Package personalize synchronizes per-user state (favorites, watched
// marks, reviews) with the remote service.
//
// Every mutation is gated on an active session and guarded against a
// concurrent mutation of the same (user, relation, movie) key. State is
// never mutated optimistically: the remote service is the source of truth
// and local views reload from it after each change.
package personalize

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/moviehub/moviehub/internal/models"
	"github.com/moviehub/moviehub/internal/remote"
	"github.com/moviehub/moviehub/internal/session"
	"github.com/moviehub/moviehub/internal/validation"
)

// Relation names used in mutation keys.
const (
	relationFavorite = "favorite"
	relationWatched  = "watched"
	relationReview   = "review"
)

// ReviewInput is the user-supplied portion of a review. The comment is
// trimmed before validation; a review with nothing to say is rejected.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=10"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

// ReviewThread is the reloaded review state for a movie after a read or a
// mutation: all reviews plus the rating aggregate.
type ReviewThread struct {
	Reviews []models.Review       `json:"reviews"`
	Rating  *models.RatingSummary `json:"rating"`
}

// Service synchronizes personalization state with the remote service.
type Service struct {
	client   remote.ClientInterface
	sessions *session.Manager
	logger   zerolog.Logger
	guard    *inflightGuard
}

// NewService creates the personalization service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(client remote.ClientInterface, sessions *session.Manager, logger zerolog.Logger) *Service {
	return &Service{
		client:   client,
		sessions: sessions,
		logger:   logger.With().Str("component", "personalize").Logger(),
		guard:    newInflightGuard(),
	}
}

// Favorites returns the active user's favorite movies.
func (s *Service) Favorites(ctx context.Context) ([]models.Movie, error) {
	record, err := s.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Favorites(ctx, record.UserID)
}

// ToggleFavorite flips a movie's membership in the active user's favorite
// set. The caller passes the state it is toggling away from. Removing a
// current favorite falls back to the add endpoint when the removal fails,
// and the removal error is returned when both fail. Adding a non-favorite
// is a plain add whose own error propagates.
func (s *Service) ToggleFavorite(ctx context.Context, movieID string, currentlyFavorite bool) error {
	record, err := s.sessions.Require(ctx)
	if err != nil {
		return err
	}

	key := mutationKey(record.UserID, relationFavorite, movieID)
	if err := s.guard.acquire(key); err != nil {
		return err
	}
	defer s.guard.release(key)

	if !currentlyFavorite {
		return s.client.AddFavorite(ctx, record.UserID, movieID)
	}

	return attemptWithFallback(ctx, s.logger, "toggle_favorite",
		func(ctx context.Context) error {
			return s.client.RemoveFavorite(ctx, record.UserID, movieID)
		},
		func(ctx context.Context) error {
			return s.client.AddFavorite(ctx, record.UserID, movieID)
		},
	)
}

// WatchedMovies returns the active user's watched movies.
func (s *Service) WatchedMovies(ctx context.Context) ([]models.Movie, error) {
	record, err := s.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Watched(ctx, record.UserID)
}

// ToggleWatched flips a movie's watched mark and returns the
// server-confirmed new state. The returned status, not the caller's
// assumption, decides what the new state is.
func (s *Service) ToggleWatched(ctx context.Context, movieID string) (*models.WatchedStatus, error) {
	record, err := s.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}

	key := mutationKey(record.UserID, relationWatched, movieID)
	if err := s.guard.acquire(key); err != nil {
		return nil, err
	}
	defer s.guard.release(key)

	return s.client.ToggleWatched(ctx, record.UserID, movieID)
}

// AddWatched marks a movie as watched for the active user without
// flipping an existing mark.
func (s *Service) AddWatched(ctx context.Context, movieID string) error {
	record, err := s.sessions.Require(ctx)
	if err != nil {
		return err
	}

	key := mutationKey(record.UserID, relationWatched, movieID)
	if err := s.guard.acquire(key); err != nil {
		return err
	}
	defer s.guard.release(key)

	return s.client.AddWatched(ctx, record.UserID, movieID)
}

// RemoveWatched clears a movie's watched mark for the active user.
func (s *Service) RemoveWatched(ctx context.Context, movieID string) error {
	record, err := s.sessions.Require(ctx)
	if err != nil {
		return err
	}

	key := mutationKey(record.UserID, relationWatched, movieID)
	if err := s.guard.acquire(key); err != nil {
		return err
	}
	defer s.guard.release(key)

	return s.client.RemoveWatched(ctx, record.UserID, movieID)
}

// IsWatched checks whether a movie is in the active user's watched set.
func (s *Service) IsWatched(ctx context.Context, movieID string) (*models.WatchedStatus, error) {
	record, err := s.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.IsWatched(ctx, record.UserID, movieID)
}

// MovieReviews loads the review thread for a movie. Reviews are public,
// so no session is required. The rating aggregate prefers the remote
// endpoint and recomputes locally from the reviews when it fails.
func (s *Service) MovieReviews(ctx context.Context, movieID string) (*ReviewThread, error) {
	return s.loadThread(ctx, movieID)
}

// UpsertReview creates or replaces the active user's review for a movie,
// then reloads the full thread. Replacement rather than append keeps at
// most one review per (movie, user) pair.
func (s *Service) UpsertReview(ctx context.Context, movieID string, input ReviewInput) (*ReviewThread, error) {
	record, err := s.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}

	input.Comment = strings.TrimSpace(input.Comment)
	if verr := validation.ValidateStruct(&input); verr != nil {
		return nil, verr
	}

	key := mutationKey(record.UserID, relationReview, movieID)
	if err := s.guard.acquire(key); err != nil {
		return nil, err
	}
	defer s.guard.release(key)

	if err := s.client.UpsertReview(ctx, movieID, record.UserID, input.Rating, input.Comment); err != nil {
		return nil, err
	}

	return s.loadThread(ctx, movieID)
}

// DeleteReview removes the active user's review for a movie, then reloads
// the full thread.
func (s *Service) DeleteReview(ctx context.Context, movieID string) (*ReviewThread, error) {
	record, err := s.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}

	key := mutationKey(record.UserID, relationReview, movieID)
	if err := s.guard.acquire(key); err != nil {
		return nil, err
	}
	defer s.guard.release(key)

	if err := s.client.DeleteReview(ctx, movieID, record.UserID); err != nil {
		return nil, err
	}

	return s.loadThread(ctx, movieID)
}

// loadThread fetches reviews and the rating aggregate concurrently. A
// failed reviews fetch fails the load; a failed rating fetch degrades to
// a locally computed aggregate.
func (s *Service) loadThread(ctx context.Context, movieID string) (*ReviewThread, error) {
	var (
		wg         sync.WaitGroup
		reviews    []models.Review
		reviewsErr error
		rating     *models.RatingSummary
		ratingErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		reviews, reviewsErr = s.client.Reviews(ctx, movieID)
	}()
	go func() {
		defer wg.Done()
		rating, ratingErr = s.client.Rating(ctx, movieID)
	}()
	wg.Wait()

	if reviewsErr != nil {
		return nil, reviewsErr
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	if ratingErr != nil || rating == nil {
		if ratingErr != nil {
			s.logger.Debug().Err(ratingErr).Str("movie_id", movieID).Msg("rating endpoint failed, aggregating locally")
		}
		rating = Summarize(movieID, reviews)
	}

	return &ReviewThread{Reviews: reviews, Rating: rating}, nil
}
