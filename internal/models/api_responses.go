// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. Status is "success" or "error"; Error is populated only for
// error responses.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Cached    bool      `json:"cached,omitempty"`
}

// APIError holds structured error details for API responses.
//
// Codes map the internal error taxonomy onto the wire:
//   - AUTHENTICATION_REQUIRED: session gate refused the action; the response
//     includes a recovery hint pointing at the login endpoint
//   - VALIDATION_ERROR: local pre-flight validation failed
//   - NETWORK_UNREACHABLE: the remote MovieHub service did not respond
//   - REMOTE_REJECTED: the remote service answered with a 4xx/5xx
//   - MUTATION_IN_FLIGHT: a concurrent mutation on the same relation was
//     dropped
type APIError struct {
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Recovery string                 `json:"recovery,omitempty"`
}
