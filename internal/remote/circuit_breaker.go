// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/moviehub/moviehub/internal/logging"
	"github.com/moviehub/moviehub/internal/metrics"
	"github.com/moviehub/moviehub/internal/models"
)

// Ensure CircuitBreakerClient implements ClientInterface
var _ ClientInterface = (*CircuitBreakerClient)(nil)

// CircuitBreakerClient wraps Client with a circuit breaker to prevent
// cascading failures when the remote MovieHub service is unavailable or
// slow.
//
// The breaker uses real time for its interval and timeout calculations.
// Tests should mock the underlying client, not the breaker.
type CircuitBreakerClient struct {
	client ClientInterface
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps client with a circuit breaker.
// Configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(client ClientInterface) *CircuitBreakerClient {
	cbName := "moviehub-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a remote call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()

			counts := cbc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)

	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Movies retrieves the movie collection with circuit breaker protection.
func (cbc *CircuitBreakerClient) Movies(ctx context.Context) ([]models.Movie, error) {
	return castResult[[]models.Movie](cbc.execute(func() (interface{}, error) {
		return cbc.client.Movies(ctx)
	}))
}

// Movie retrieves a single movie with circuit breaker protection.
func (cbc *CircuitBreakerClient) Movie(ctx context.Context, movieID string) (*models.Movie, error) {
	return castResult[*models.Movie](cbc.execute(func() (interface{}, error) {
		return cbc.client.Movie(ctx, movieID)
	}))
}

// Reviews retrieves movie reviews with circuit breaker protection.
func (cbc *CircuitBreakerClient) Reviews(ctx context.Context, movieID string) ([]models.Review, error) {
	return castResult[[]models.Review](cbc.execute(func() (interface{}, error) {
		return cbc.client.Reviews(ctx, movieID)
	}))
}

// Rating retrieves the rating aggregate with circuit breaker protection.
func (cbc *CircuitBreakerClient) Rating(ctx context.Context, movieID string) (*models.RatingSummary, error) {
	return castResult[*models.RatingSummary](cbc.execute(func() (interface{}, error) {
		return cbc.client.Rating(ctx, movieID)
	}))
}

// UpsertReview upserts a review with circuit breaker protection.
func (cbc *CircuitBreakerClient) UpsertReview(ctx context.Context, movieID, userID string, rating int, comment string) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.UpsertReview(ctx, movieID, userID, rating, comment)
	})
	return err
}

// DeleteReview deletes a review with circuit breaker protection.
func (cbc *CircuitBreakerClient) DeleteReview(ctx context.Context, movieID, userID string) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.DeleteReview(ctx, movieID, userID)
	})
	return err
}

// Login authenticates with circuit breaker protection.
func (cbc *CircuitBreakerClient) Login(ctx context.Context, email, password string) (*models.UserRecord, error) {
	return castResult[*models.UserRecord](cbc.execute(func() (interface{}, error) {
		return cbc.client.Login(ctx, email, password)
	}))
}

// Register creates an account with circuit breaker protection.
func (cbc *CircuitBreakerClient) Register(ctx context.Context, displayName, email, password string) (*models.UserRecord, error) {
	return castResult[*models.UserRecord](cbc.execute(func() (interface{}, error) {
		return cbc.client.Register(ctx, displayName, email, password)
	}))
}

// Logout invalidates the remote session with circuit breaker protection.
func (cbc *CircuitBreakerClient) Logout(ctx context.Context) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Logout(ctx)
	})
	return err
}

// User retrieves a profile with circuit breaker protection.
func (cbc *CircuitBreakerClient) User(ctx context.Context, userID string) (*models.UserRecord, error) {
	return castResult[*models.UserRecord](cbc.execute(func() (interface{}, error) {
		return cbc.client.User(ctx, userID)
	}))
}

// Favorites retrieves the favorite set with circuit breaker protection.
func (cbc *CircuitBreakerClient) Favorites(ctx context.Context, userID string) ([]models.Movie, error) {
	return castResult[[]models.Movie](cbc.execute(func() (interface{}, error) {
		return cbc.client.Favorites(ctx, userID)
	}))
}

// AddFavorite adds a favorite with circuit breaker protection.
func (cbc *CircuitBreakerClient) AddFavorite(ctx context.Context, userID, movieID string) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.AddFavorite(ctx, userID, movieID)
	})
	return err
}

// RemoveFavorite removes a favorite with circuit breaker protection.
func (cbc *CircuitBreakerClient) RemoveFavorite(ctx context.Context, userID, movieID string) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.RemoveFavorite(ctx, userID, movieID)
	})
	return err
}

// Watched retrieves the watched set with circuit breaker protection.
func (cbc *CircuitBreakerClient) Watched(ctx context.Context, userID string) ([]models.Movie, error) {
	return castResult[[]models.Movie](cbc.execute(func() (interface{}, error) {
		return cbc.client.Watched(ctx, userID)
	}))
}

// AddWatched marks watched with circuit breaker protection.
func (cbc *CircuitBreakerClient) AddWatched(ctx context.Context, userID, movieID string) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.AddWatched(ctx, userID, movieID)
	})
	return err
}

// RemoveWatched clears the watched mark with circuit breaker protection.
func (cbc *CircuitBreakerClient) RemoveWatched(ctx context.Context, userID, movieID string) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.RemoveWatched(ctx, userID, movieID)
	})
	return err
}

// IsWatched checks watched membership with circuit breaker protection.
func (cbc *CircuitBreakerClient) IsWatched(ctx context.Context, userID, movieID string) (*models.WatchedStatus, error) {
	return castResult[*models.WatchedStatus](cbc.execute(func() (interface{}, error) {
		return cbc.client.IsWatched(ctx, userID, movieID)
	}))
}

// ToggleWatched flips the watched mark with circuit breaker protection.
func (cbc *CircuitBreakerClient) ToggleWatched(ctx context.Context, userID, movieID string) (*models.WatchedStatus, error) {
	return castResult[*models.WatchedStatus](cbc.execute(func() (interface{}, error) {
		return cbc.client.ToggleWatched(ctx, userID, movieID)
	}))
}
