// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/moviehub/moviehub/internal/catalog"
	"github.com/moviehub/moviehub/internal/logging"
	"github.com/moviehub/moviehub/internal/models"
	"github.com/moviehub/moviehub/internal/remote"
)

type countingClient struct {
	remote.ClientInterface

	calls atomic.Int64
}

func (c *countingClient) Movies(context.Context) ([]models.Movie, error) {
	c.calls.Add(1)
	return []models.Movie{{ID: "a", Title: "Alpha"}}, nil
}

func TestCatalogRefresherTicks(t *testing.T) {
	client := &countingClient{}
	store := catalog.NewStore(client, 0, logging.NewTestLogger(io.Discard))
	refresher := NewCatalogRefresher(store, 10*time.Millisecond, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := refresher.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want context deadline", err)
	}

	// Initial warm-up plus at least one tick.
	if got := client.calls.Load(); got < 2 {
		t.Errorf("refresher fetched %d times, want >= 2", got)
	}
}

func TestCatalogRefresherDisabledIdles(t *testing.T) {
	client := &countingClient{}
	store := catalog.NewStore(client, 0, logging.NewTestLogger(io.Discard))
	refresher := NewCatalogRefresher(store, 0, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := refresher.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want context deadline", err)
	}
	if got := client.calls.Load(); got != 0 {
		t.Errorf("disabled refresher fetched %d times, want 0", got)
	}
}

func TestTreeServesAndStops(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tree := NewTree(logger, DefaultTreeConfig())

	client := &countingClient{}
	store := catalog.NewStore(client, 0, logging.NewTestLogger(io.Discard))
	tree.AddBackgroundService(NewCatalogRefresher(store, 10*time.Millisecond, logging.NewTestLogger(io.Discard)))

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor tree did not stop after cancellation")
	}

	if got := client.calls.Load(); got == 0 {
		t.Error("supervised refresher never ran")
	}
}
