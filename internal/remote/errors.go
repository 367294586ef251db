// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package remote

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// ErrNetworkUnreachable is returned when the remote MovieHub service does
// not answer at all (transport error, no HTTP response).
var ErrNetworkUnreachable = errors.New("remote service unreachable")

// Category classifies a RemoteError for localized presentation.
type Category string

// Error categories mapped from HTTP status codes.
const (
	CategoryNotFound     Category = "not-found"
	CategoryBadRequest   Category = "bad-request"
	CategoryUnauthorized Category = "unauthorized"
	CategoryConflict     Category = "conflict"
	CategoryServerError  Category = "server-error"
)

// RemoteError is a 4xx/5xx answer from the remote service with the
// server-supplied detail preserved.
type RemoteError struct {
	Status   int
	Message  string
	Category Category
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote service returned status %d (%s): %s", e.Status, e.Category, e.Message)
	}
	return fmt.Sprintf("remote service returned status %d (%s)", e.Status, e.Category)
}

// Classify maps an HTTP status code onto an error category.
func Classify(status int) Category {
	switch {
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CategoryUnauthorized
	case status == http.StatusConflict:
		return CategoryConflict
	case status >= 400 && status < 500:
		return CategoryBadRequest
	default:
		return CategoryServerError
	}
}

// newRemoteError builds a RemoteError from a non-2xx response body. The body
// may be a JSON object with a message field, a bare JSON string, or plain
// text.
func newRemoteError(status int, body []byte) *RemoteError {
	return &RemoteError{
		Status:   status,
		Message:  extractMessage(body),
		Category: Classify(status),
	}
}

func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var structured struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Message != "" {
		return structured.Message
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return plain
	}

	return trimmed
}

// IsNotFound reports whether err is a RemoteError in the not-found category.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Category == CategoryNotFound
}
