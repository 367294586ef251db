// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package api

import (
	"errors"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/moviehub/moviehub/internal/personalize"
	"github.com/moviehub/moviehub/internal/remote"
	"github.com/moviehub/moviehub/internal/session"
	"github.com/moviehub/moviehub/internal/validation"
)

// Error codes returned in APIError.Code.
const (
	codeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	codeValidationError        = "VALIDATION_ERROR"
	codeNetworkUnreachable     = "NETWORK_UNREACHABLE"
	codeRemoteRejected         = "REMOTE_REJECTED"
	codeMutationInFlight       = "MUTATION_IN_FLIGHT"
	codeInternalError          = "INTERNAL_ERROR"
)

// respondMappedError translates domain errors into the API error envelope.
// The authentication gate is a prompt, not a failure, so it carries a
// recovery hint instead of an alarming message.
func respondMappedError(w http.ResponseWriter, err error) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, "", nil)
		return
	}

	if errors.Is(err, session.ErrAuthenticationRequired) {
		respondError(w, http.StatusUnauthorized, codeAuthenticationRequired,
			"This feature requires a signed-in user", "Sign in and retry the request", nil)
		return
	}

	if errors.Is(err, personalize.ErrMutationInFlight) {
		respondError(w, http.StatusConflict, codeMutationInFlight,
			"The same change is already being applied", "Wait for the running change to finish", nil)
		return
	}

	if errors.Is(err, remote.ErrNetworkUnreachable) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) {
		respondError(w, http.StatusServiceUnavailable, codeNetworkUnreachable,
			"The movie service is unreachable", "Check connectivity and retry", err)
		return
	}

	var re *remote.RemoteError
	if errors.As(err, &re) {
		respondError(w, re.Status, codeRemoteRejected, re.Message, "", err)
		return
	}

	respondError(w, http.StatusInternalServerError, codeInternalError,
		"An unexpected error occurred", "", err)
}
