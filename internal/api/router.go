// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moviehub/moviehub/internal/config"
)

// NewRouter wires all HTTP routes.
func NewRouter(handler *Handler, cfg *config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(RequestID())
	r.Use(RequestLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware(cfg.CORSOrigins))

	rateRequests := cfg.RateLimitRequests
	if rateRequests <= 0 {
		rateRequests = 100
	}
	rateWindow := cfg.RateLimitWindow
	if rateWindow <= 0 {
		rateWindow = time.Minute
	}

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/v1/health", handler.Health)

	r.Route("/api/v1/auth", func(r chi.Router) {
		// Tighter limit on auth endpoints slows credential stuffing.
		r.Use(httprate.LimitByIP(rateRequests/10+1, rateWindow))

		r.Post("/login", handler.Login)
		r.Post("/register", handler.Register)
		r.Post("/logout", handler.Logout)
		r.Get("/session", handler.Session)
		r.Get("/profile", handler.Profile)
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rateRequests, rateWindow))

		r.Get("/movies", handler.Movies)
		r.Get("/movies/{movieID}", handler.Movie)
		r.Get("/movies/{movieID}/similar", handler.Similar)
		r.Get("/movies/{movieID}/reviews", handler.MovieReviews)
		r.Get("/popular", handler.Popular)
		r.Get("/latest", handler.Latest)
		r.Get("/categories", handler.Categories)
		r.Get("/genres/{tag}", handler.ByGenre)
		r.Get("/search", handler.Search)
		r.Get("/directors", handler.Directors)
		r.Get("/directors/{name}/movies", handler.ByDirector)
		r.Get("/actors", handler.Actors)
		r.Get("/actors/{name}/movies", handler.ByActor)
	})

	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rateRequests, rateWindow))

		r.Get("/favorites", handler.Favorites)
		r.Post("/favorites/{movieID}/toggle", handler.ToggleFavorite)
		r.Get("/watched", handler.WatchedMovies)
		r.Get("/watched/{movieID}", handler.IsWatched)
		r.Put("/watched/{movieID}", handler.MarkWatched)
		r.Delete("/watched/{movieID}", handler.UnmarkWatched)
		r.Post("/watched/{movieID}/toggle", handler.ToggleWatched)
		r.Put("/reviews/{movieID}", handler.UpsertReview)
		r.Delete("/reviews/{movieID}", handler.DeleteReview)
	})

	return r
}

// corsMiddleware allows cross-origin calls from the configured origins.
// With no origins configured, same-origin only.
func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
