// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moviehub/moviehub/internal/personalize"
)

// Favorites returns the active user's favorite movies.
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	movies, err := h.personal.Favorites(r.Context())
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, movies)
}

// ToggleFavoriteRequest carries the favorite state the caller is toggling
// away from.
type ToggleFavoriteRequest struct {
	CurrentlyFavorite bool `json:"currentlyFavorite"`
}

// ToggleFavorite flips a movie's favorite membership for the active user.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	var req ToggleFavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "Request body must be valid JSON", "", err)
		return
	}

	if err := h.personal.ToggleFavorite(r.Context(), movieID, req.CurrentlyFavorite); err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"movieId": movieID, "status": "toggled"})
}

// WatchedMovies returns the active user's watched movies.
func (h *Handler) WatchedMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.personal.WatchedMovies(r.Context())
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, movies)
}

// ToggleWatched flips a movie's watched mark and returns the
// server-confirmed state.
func (h *Handler) ToggleWatched(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	status, err := h.personal.ToggleWatched(r.Context(), movieID)
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, status)
}

// MarkWatched adds a movie to the active user's watched set.
func (h *Handler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	if err := h.personal.AddWatched(r.Context(), movieID); err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"movieId": movieID, "watched": true})
}

// UnmarkWatched removes a movie from the active user's watched set.
func (h *Handler) UnmarkWatched(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	if err := h.personal.RemoveWatched(r.Context(), movieID); err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"movieId": movieID, "watched": false})
}

// IsWatched reports whether a movie is in the active user's watched set.
func (h *Handler) IsWatched(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	status, err := h.personal.IsWatched(r.Context(), movieID)
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, status)
}

// UpsertReview creates or replaces the active user's review for a movie
// and returns the reloaded thread.
func (h *Handler) UpsertReview(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	var input personalize.ReviewInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "Request body must be valid JSON", "", err)
		return
	}

	thread, err := h.personal.UpsertReview(r.Context(), movieID, input)
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, thread)
}

// DeleteReview removes the active user's review for a movie and returns
// the reloaded thread.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	thread, err := h.personal.DeleteReview(r.Context(), movieID)
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, thread)
}
