// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package api

import (
	"net/http"

	"github.com/moviehub/moviehub/internal/session"
	"github.com/moviehub/moviehub/internal/validation"
)

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	DisplayName string `json:"displayName" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
}

// sessionView is the session record exposed over the API. The token stays
// server-side.
type sessionView struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func newSessionView(record *session.Record) sessionView {
	return sessionView{
		UserID:      record.UserID,
		DisplayName: record.DisplayName,
		Email:       record.Email,
	}
}

// Login authenticates against the remote service and establishes the
// durable session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "Request body must be valid JSON", "", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondMappedError(w, verr)
		return
	}

	record, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, newSessionView(record))
}

// Register creates an account and establishes the durable session.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "Request body must be valid JSON", "", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondMappedError(w, verr)
		return
	}

	record, err := h.sessions.Register(r.Context(), req.DisplayName, req.Email, req.Password)
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusCreated, newSessionView(record))
}

// Logout clears the session. Always succeeds locally even when the remote
// logout fails.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// Session returns the active session, or 401 when anonymous.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	record, err := h.sessions.Require(r.Context())
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, newSessionView(record))
}

// Profile returns the fresh remote profile of the active user.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.sessions.Profile(r.Context())
	if err != nil {
		respondMappedError(w, err)
		return
	}
	respondData(w, http.StatusOK, profile)
}
