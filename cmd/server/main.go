// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

// Package main is the entry point for the MovieHub core server.
//
// The server is a stateful client of the remote MovieHub catalog service.
// It caches the movie collection, derives the browsing views (popular,
// latest, by genre, search, similar), and synchronizes per-user state
// (favorites, watched marks, reviews) gated on a durable login session.
//
// # Startup order
//
//  1. Configuration: koanf v2 layered sources (defaults, config.yaml, env)
//  2. Logging: zerolog, configured from the logging section
//  3. Session store: BadgerDB at session.storepath
//  4. Remote client: rate-limited REST client wrapped in a circuit breaker
//  5. Services: catalog store, session manager, personalization sync
//  6. Supervisor tree: catalog refresher, session cleanup, HTTP server
//
// # Signal handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests, background services stop, and BadgerDB closes.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgraph-io/badger/v4"

	"github.com/moviehub/moviehub/internal/api"
	"github.com/moviehub/moviehub/internal/catalog"
	"github.com/moviehub/moviehub/internal/config"
	"github.com/moviehub/moviehub/internal/logging"
	"github.com/moviehub/moviehub/internal/personalize"
	"github.com/moviehub/moviehub/internal/remote"
	"github.com/moviehub/moviehub/internal/session"
	"github.com/moviehub/moviehub/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("remote_url", cfg.Remote.BaseURL).
		Str("session_store", cfg.Session.StorePath).
		Int("port", cfg.Server.Port).
		Msg("Starting MovieHub core server")

	db, err := openSessionDB(cfg.Session.StorePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	// Remote client behind a circuit breaker so a flapping catalog service
	// cannot pile up requests.
	restClient := remote.NewClient(&cfg.Remote)
	client := remote.NewCircuitBreakerClient(restClient)

	logger := logging.Logger()
	sessions := session.NewManager(client, session.NewStore(db), cfg.Session.TTL, logger)
	restClient.SetTokenSource(sessions.Token)

	store := catalog.NewStore(client, cfg.Catalog.SnapshotTTL, logger)
	personal := personalize.NewService(client, sessions, logger)

	handler := api.NewHandler(store, sessions, personal, cfg.Catalog)
	router := api.NewRouter(handler, &cfg.Server)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddBackgroundService(supervisor.NewCatalogRefresher(store, cfg.Catalog.RefreshInterval, logger))
	tree.AddBackgroundService(supervisor.NewSessionCleaner(sessions, cfg.Session.CleanupInterval, logger))
	tree.AddAPIService(supervisor.NewHTTPServer(server, supervisor.DefaultTreeConfig().ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
		<-done
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			logging.Error().Err(err).Msg("Supervisor tree exited unexpectedly")
			os.Exit(1)
		}
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services did not stop within timeout")
	}

	logging.Info().Msg("Shutdown complete")
}

// openSessionDB opens the BadgerDB session store, creating the directory
// when missing. Badger's own logger is silenced in favor of zerolog.
func openSessionDB(path string) (*badger.DB, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create session store directory: %w", err)
	}

	opts := badger.DefaultOptions(path).WithLogger(nil)
	return badger.Open(opts)
}
