// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package supervisor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/moviehub/moviehub/internal/catalog"
	"github.com/moviehub/moviehub/internal/session"
)

// CatalogRefresher periodically re-fetches the movie collection so derived
// views stay close to the remote state.
type CatalogRefresher struct {
	store    *catalog.Store
	interval time.Duration
	logger   zerolog.Logger
}

var _ suture.Service = (*CatalogRefresher)(nil)

// NewCatalogRefresher creates the refresher. A non-positive interval
// disables periodic refresh; the service then idles until shutdown.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogRefresher(store *catalog.Store, interval time.Duration, logger zerolog.Logger) *CatalogRefresher {
	return &CatalogRefresher{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "catalog-refresher").Logger(),
	}
}

// Serve implements suture.Service. A failed refresh is logged, not fatal;
// the next tick retries.
func (c *CatalogRefresher) Serve(ctx context.Context) error {
	if c.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	// Warm the snapshot before the first tick.
	if err := c.store.Refresh(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("initial catalog refresh failed")
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.store.Refresh(ctx); err != nil {
				c.logger.Warn().Err(err).Msg("catalog refresh failed")
			}
		}
	}
}

// SessionCleaner periodically purges the expired session record.
type SessionCleaner struct {
	sessions *session.Manager
	interval time.Duration
	logger   zerolog.Logger
}

var _ suture.Service = (*SessionCleaner)(nil)

// NewSessionCleaner creates the cleaner. A non-positive interval disables
// cleanup.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSessionCleaner(sessions *session.Manager, interval time.Duration, logger zerolog.Logger) *SessionCleaner {
	return &SessionCleaner{
		sessions: sessions,
		interval: interval,
		logger:   logger.With().Str("service", "session-cleaner").Logger(),
	}
}

// Serve implements suture.Service.
func (s *SessionCleaner) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.sessions.CleanupExpired(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("session cleanup failed")
			}
		}
	}
}

// HTTPServer runs the API server under supervision with graceful shutdown.
type HTTPServer struct {
	server          *http.Server
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

var _ suture.Service = (*HTTPServer)(nil)

// NewHTTPServer wraps an http.Server as a suture service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServer {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServer{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("service", "http-server").Logger(),
	}
}

// Serve implements suture.Service. On context cancellation the server
// drains in-flight requests before returning.
func (h *HTTPServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		h.logger.Info().Str("addr", h.server.Addr).Msg("http server listening")
		errCh <- h.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(shutdownCtx); err != nil {
		h.logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	h.logger.Info().Msg("http server stopped")
	return ctx.Err()
}
