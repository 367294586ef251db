// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

/*
client.go - MovieHub REST API client

This file implements the REST client for the remote MovieHub service. The
service contract is fixed: movies, per-movie reviews and ratings, user
accounts, and per-user favorite/watched relations.
*/

package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/moviehub/moviehub/internal/config"
	"github.com/moviehub/moviehub/internal/metrics"
	"github.com/moviehub/moviehub/internal/models"
)

// TokenSource supplies the current session token for outgoing requests.
// An empty return means no Authorization header is sent.
type TokenSource func() string

// ClientInterface defines the remote MovieHub service operations. Both
// Client and CircuitBreakerClient implement this interface.
type ClientInterface interface {
	Movies(ctx context.Context) ([]models.Movie, error)
	Movie(ctx context.Context, movieID string) (*models.Movie, error)
	Reviews(ctx context.Context, movieID string) ([]models.Review, error)
	Rating(ctx context.Context, movieID string) (*models.RatingSummary, error)
	UpsertReview(ctx context.Context, movieID, userID string, rating int, comment string) error
	DeleteReview(ctx context.Context, movieID, userID string) error

	Login(ctx context.Context, email, password string) (*models.UserRecord, error)
	Register(ctx context.Context, displayName, email, password string) (*models.UserRecord, error)
	Logout(ctx context.Context) error
	User(ctx context.Context, userID string) (*models.UserRecord, error)

	Favorites(ctx context.Context, userID string) ([]models.Movie, error)
	AddFavorite(ctx context.Context, userID, movieID string) error
	RemoveFavorite(ctx context.Context, userID, movieID string) error

	Watched(ctx context.Context, userID string) ([]models.Movie, error)
	AddWatched(ctx context.Context, userID, movieID string) error
	RemoveWatched(ctx context.Context, userID, movieID string) error
	IsWatched(ctx context.Context, userID, movieID string) (*models.WatchedStatus, error)
	ToggleWatched(ctx context.Context, userID, movieID string) (*models.WatchedStatus, error)
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// Client provides access to the remote MovieHub REST API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	tokenSource TokenSource
}

// NewClient creates a new MovieHub API client.
func NewClient(cfg *config.RemoteConfig) *Client {
	// Normalize URL (remove trailing slash)
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.RequestBurst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// SetTokenSource installs the session token provider. All subsequent
// requests carry the token as a bearer Authorization header when non-empty.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

// Movies retrieves the full movie collection.
func (c *Client) Movies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.call(ctx, "movies", http.MethodGet, "/movies", nil, &movies); err != nil {
		return nil, fmt.Errorf("movies request failed: %w", err)
	}
	return movies, nil
}

// Movie retrieves a single movie by identifier.
func (c *Client) Movie(ctx context.Context, movieID string) (*models.Movie, error) {
	var movie models.Movie
	if err := c.call(ctx, "movie", http.MethodGet, "/movies/"+movieID, nil, &movie); err != nil {
		return nil, fmt.Errorf("movie request failed: %w", err)
	}
	return &movie, nil
}

// Reviews retrieves all reviews for a movie.
func (c *Client) Reviews(ctx context.Context, movieID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.call(ctx, "reviews", http.MethodGet, "/movies/"+movieID+"/reviews", nil, &reviews); err != nil {
		return nil, fmt.Errorf("reviews request failed: %w", err)
	}
	return reviews, nil
}

// Rating retrieves the server-computed rating aggregate for a movie.
func (c *Client) Rating(ctx context.Context, movieID string) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	if err := c.call(ctx, "rating", http.MethodGet, "/movies/"+movieID+"/rating", nil, &summary); err != nil {
		return nil, fmt.Errorf("rating request failed: %w", err)
	}
	return &summary, nil
}

// UpsertReview creates or replaces the user's review for a movie.
func (c *Client) UpsertReview(ctx context.Context, movieID, userID string, rating int, comment string) error {
	body := map[string]interface{}{
		"rating":  rating,
		"comment": comment,
	}
	if err := c.call(ctx, "upsert_review", http.MethodPost, "/movies/"+movieID+"/reviews/"+userID, body, nil); err != nil {
		return fmt.Errorf("upsert review request failed: %w", err)
	}
	return nil
}

// DeleteReview removes the user's review for a movie.
func (c *Client) DeleteReview(ctx context.Context, movieID, userID string) error {
	if err := c.call(ctx, "delete_review", http.MethodDelete, "/movies/"+movieID+"/reviews/"+userID, nil, nil); err != nil {
		return fmt.Errorf("delete review request failed: %w", err)
	}
	return nil
}

// Login authenticates a user with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*models.UserRecord, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var user models.UserRecord
	if err := c.call(ctx, "login", http.MethodPost, "/users/login", body, &user); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &user, nil
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, displayName, email, password string) (*models.UserRecord, error) {
	body := map[string]string{
		"displayName": displayName,
		"email":       email,
		"password":    password,
	}
	var user models.UserRecord
	if err := c.call(ctx, "register", http.MethodPost, "/users/register", body, &user); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &user, nil
}

// Logout invalidates the current session on the remote service.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.call(ctx, "logout", http.MethodPost, "/users/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// User retrieves a user profile.
func (c *Client) User(ctx context.Context, userID string) (*models.UserRecord, error) {
	var user models.UserRecord
	if err := c.call(ctx, "user", http.MethodGet, "/users/"+userID, nil, &user); err != nil {
		return nil, fmt.Errorf("user request failed: %w", err)
	}
	return &user, nil
}

// Favorites retrieves the user's favorite movies.
func (c *Client) Favorites(ctx context.Context, userID string) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.call(ctx, "favorites", http.MethodGet, "/users/"+userID+"/favorites", nil, &movies); err != nil {
		return nil, fmt.Errorf("favorites request failed: %w", err)
	}
	return movies, nil
}

// AddFavorite adds a movie to the user's favorite set. The remote endpoint
// is idempotent toggle-style: adding an already present movie flips it out
// of the set.
func (c *Client) AddFavorite(ctx context.Context, userID, movieID string) error {
	if err := c.call(ctx, "add_favorite", http.MethodPost, "/users/"+userID+"/favorites/"+movieID, nil, nil); err != nil {
		return fmt.Errorf("add favorite request failed: %w", err)
	}
	return nil
}

// RemoveFavorite removes a movie from the user's favorite set.
func (c *Client) RemoveFavorite(ctx context.Context, userID, movieID string) error {
	if err := c.call(ctx, "remove_favorite", http.MethodDelete, "/users/"+userID+"/favorites/"+movieID, nil, nil); err != nil {
		return fmt.Errorf("remove favorite request failed: %w", err)
	}
	return nil
}

// Watched retrieves the user's watched movies.
func (c *Client) Watched(ctx context.Context, userID string) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.call(ctx, "watched", http.MethodGet, "/users/"+userID+"/watched", nil, &movies); err != nil {
		return nil, fmt.Errorf("watched request failed: %w", err)
	}
	return movies, nil
}

// AddWatched marks a movie as watched.
func (c *Client) AddWatched(ctx context.Context, userID, movieID string) error {
	if err := c.call(ctx, "add_watched", http.MethodPost, "/users/"+userID+"/watched/"+movieID, nil, nil); err != nil {
		return fmt.Errorf("add watched request failed: %w", err)
	}
	return nil
}

// RemoveWatched clears the watched mark for a movie.
func (c *Client) RemoveWatched(ctx context.Context, userID, movieID string) error {
	if err := c.call(ctx, "remove_watched", http.MethodDelete, "/users/"+userID+"/watched/"+movieID, nil, nil); err != nil {
		return fmt.Errorf("remove watched request failed: %w", err)
	}
	return nil
}

// IsWatched checks whether a movie is in the user's watched set.
func (c *Client) IsWatched(ctx context.Context, userID, movieID string) (*models.WatchedStatus, error) {
	var status models.WatchedStatus
	if err := c.call(ctx, "is_watched", http.MethodGet, "/users/"+userID+"/watched/"+movieID, nil, &status); err != nil {
		return nil, fmt.Errorf("is watched request failed: %w", err)
	}
	return &status, nil
}

// ToggleWatched flips the watched mark and returns the server-confirmed new
// state together with a display message.
func (c *Client) ToggleWatched(ctx context.Context, userID, movieID string) (*models.WatchedStatus, error) {
	var status models.WatchedStatus
	if err := c.call(ctx, "toggle_watched", http.MethodPut, "/users/"+userID+"/watched/"+movieID+"/toggle", nil, &status); err != nil {
		return nil, fmt.Errorf("toggle watched request failed: %w", err)
	}
	return &status, nil
}

// call performs a request against the MovieHub API and decodes the response
// body into out when out is non-nil. Transport failures map to
// ErrNetworkUnreachable; non-2xx answers map to RemoteError.
func (c *Client) call(ctx context.Context, operation, method, endpoint string, body, out interface{}) error {
	start := time.Now()
	err := c.doCall(ctx, method, endpoint, body, out)
	metrics.RemoteRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RemoteRequests.WithLabelValues(operation, "failure").Inc()
		return err
	}

	metrics.RemoteRequests.WithLabelValues(operation, "success").Inc()
	return nil
}

func (c *Client) doCall(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			respBody = nil
		}
		return newRemoteError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
