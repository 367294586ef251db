// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

// Package api exposes the catalog and personalization operations over HTTP
// using the chi router. Responses use the APIResponse envelope; domain
// errors map onto stable error codes (see errors.go).
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moviehub/moviehub/internal/catalog"
	"github.com/moviehub/moviehub/internal/config"
	"github.com/moviehub/moviehub/internal/personalize"
	"github.com/moviehub/moviehub/internal/session"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	catalog   *catalog.Store
	sessions  *session.Manager
	personal  *personalize.Service
	limits    config.CatalogConfig
	startedAt time.Time
}

// NewHandler creates the API handler.
func NewHandler(store *catalog.Store, sessions *session.Manager, personal *personalize.Service, limits config.CatalogConfig) *Handler {
	return &Handler{
		catalog:   store,
		sessions:  sessions,
		personal:  personal,
		limits:    limits,
		startedAt: time.Now(),
	}
}

// Health reports liveness and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// Movies returns the full catalog snapshot.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.catalog.Snapshot(r.Context()))
}

// Movie returns a single movie by ID.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	movie := h.catalog.MovieByID(r.Context(), movieID)
	if movie == nil {
		respondError(w, http.StatusNotFound, codeRemoteRejected, "Movie not found", "", nil)
		return
	}
	respondData(w, http.StatusOK, movie)
}

// Popular returns the top-rated movies.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	snapshot := h.catalog.Snapshot(r.Context())
	respondData(w, http.StatusOK, catalog.Popular(snapshot, h.limits.PopularLimit))
}

// Latest returns the most recent movies.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	snapshot := h.catalog.Snapshot(r.Context())
	respondData(w, http.StatusOK, catalog.Latest(snapshot, h.limits.LatestLimit))
}

// Categories returns the distinct genre tokens across the catalog.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, catalog.Categories(h.catalog.Snapshot(r.Context())))
}

// ByGenre returns movies matching a genre tag. Browsing by genre is a
// signed-in feature.
func (h *Handler) ByGenre(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.Require(r.Context()); err != nil {
		respondMappedError(w, err)
		return
	}

	tag := chi.URLParam(r, "tag")
	respondData(w, http.StatusOK, catalog.ByGenre(h.catalog.Snapshot(r.Context()), tag))
}

// Search returns movies matching the q query parameter. Search is a
// signed-in feature; an empty query returns an empty result.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.Require(r.Context()); err != nil {
		respondMappedError(w, err)
		return
	}

	query := r.URL.Query().Get("q")
	respondData(w, http.StatusOK, catalog.Search(h.catalog.Snapshot(r.Context()), query))
}

// Similar returns movies sharing a genre with the given movie.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	target := h.catalog.MovieByID(r.Context(), movieID)
	if target == nil {
		respondError(w, http.StatusNotFound, codeRemoteRejected, "Movie not found", "", nil)
		return
	}

	snapshot := h.catalog.Snapshot(r.Context())
	respondData(w, http.StatusOK, catalog.Similar(snapshot, target, h.limits.SimilarLimit))
}

// Directors returns the distinct producer names across the catalog.
func (h *Handler) Directors(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, catalog.Directors(h.catalog.Snapshot(r.Context())))
}

// ByDirector returns movies by producer name.
func (h *Handler) ByDirector(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	respondData(w, http.StatusOK, catalog.ByDirector(h.catalog.Snapshot(r.Context()), name))
}

// Actors returns the distinct cast member names across the catalog.
func (h *Handler) Actors(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, catalog.Actors(h.catalog.Snapshot(r.Context())))
}

// ByActor returns movies featuring a cast member.
func (h *Handler) ByActor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	respondData(w, http.StatusOK, catalog.ByActor(h.catalog.Snapshot(r.Context()), name))
}

// MovieReviews returns the review thread and rating aggregate for a movie.
func (h *Handler) MovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	thread, err := h.personal.MovieReviews(r.Context(), movieID)
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, thread)
}
