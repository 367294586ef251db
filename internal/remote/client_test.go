// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moviehub/moviehub/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.RemoteConfig{
		BaseURL:           baseURL,
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
		RequestBurst:      1000,
	})
}

func TestMoviesDecodesCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies" {
			t.Errorf("got path %s, want /movies", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "movieName": "Alpha", "imdbRating": "8.5"}]`))
	}))
	defer server.Close()

	movies, err := newTestClient(server.URL).Movies(context.Background())
	if err != nil {
		t.Fatalf("movies failed: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != "1" || movies[0].Title != "Alpha" || movies[0].IMDbRating != 8.5 {
		t.Errorf("decoded %+v", movies)
	}
}

func TestBearerTokenSent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.SetTokenSource(func() string { return "tok-1" })

	if _, err := client.Movies(context.Background()); err != nil {
		t.Fatalf("movies failed: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("got Authorization %q, want Bearer tok-1", gotAuth)
	}
}

func TestNoAuthHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	var hasHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasHeader = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.SetTokenSource(func() string { return "" })

	if _, err := client.Movies(context.Background()); err != nil {
		t.Fatalf("movies failed: %v", err)
	}
	if hasHeader {
		t.Errorf("anonymous request carried Authorization %q", gotAuth)
	}
}

func TestRemoteErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		category Category
		message  string
	}{
		{"not found with message", 404, `{"message": "no such movie"}`, CategoryNotFound, "no such movie"},
		{"unauthorized", 401, `{"message": "Invalid credentials"}`, CategoryUnauthorized, "Invalid credentials"},
		{"forbidden", 403, ``, CategoryUnauthorized, ""},
		{"conflict", 409, `already exists`, CategoryConflict, "already exists"},
		{"bad request bare string", 400, `"rating out of range"`, CategoryBadRequest, "rating out of range"},
		{"server error", 500, ``, CategoryServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Movies(context.Background())
			var re *RemoteError
			if !errors.As(err, &re) {
				t.Fatalf("got %v, want RemoteError", err)
			}
			if re.Status != tt.status || re.Category != tt.category {
				t.Errorf("got status=%d category=%s, want %d/%s", re.Status, re.Category, tt.status, tt.category)
			}
			if re.Message != tt.message {
				t.Errorf("got message %q, want %q", re.Message, tt.message)
			}
		})
	}
}

func TestNetworkUnreachable(t *testing.T) {
	// Closed server yields a transport error.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).Movies(context.Background())
	if !errors.Is(err, ErrNetworkUnreachable) {
		t.Fatalf("got %v, want ErrNetworkUnreachable", err)
	}
}

func TestIsNotFound(t *testing.T) {
	err := newRemoteError(404, nil)
	if !IsNotFound(err) {
		t.Error("404 must classify as not found")
	}
	if IsNotFound(newRemoteError(500, nil)) {
		t.Error("500 must not classify as not found")
	}
	if IsNotFound(ErrNetworkUnreachable) {
		t.Error("network error must not classify as not found")
	}
}

func TestToggleWatchedUsesPutToggleEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/u1/watched/m1/toggle" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"watched": true, "message": "marked as watched"}`))
	}))
	defer server.Close()

	status, err := newTestClient(server.URL).ToggleWatched(context.Background(), "u1", "m1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !status.Watched || status.Message != "marked as watched" {
		t.Errorf("got %+v", status)
	}
}

func TestWatchedSetEndpoints(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if err := client.AddWatched(context.Background(), "u1", "m1"); err != nil {
		t.Fatalf("add watched failed: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/users/u1/watched/m1" {
		t.Errorf("add watched got %s %s", gotMethod, gotPath)
	}

	if err := client.RemoveWatched(context.Background(), "u1", "m1"); err != nil {
		t.Fatalf("remove watched failed: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/users/u1/watched/m1" {
		t.Errorf("remove watched got %s %s", gotMethod, gotPath)
	}
}

func TestUpsertReviewPostsBody(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestClient(server.URL).UpsertReview(context.Background(), "m1", "u1", 4, "good")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if gotBody != `{"comment":"good","rating":4}` {
		t.Errorf("got body %s", gotBody)
	}
}
