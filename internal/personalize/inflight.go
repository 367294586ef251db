// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package personalize

import (
	"errors"
	"fmt"
	"sync"

	"github.com/moviehub/moviehub/internal/metrics"
)

// ErrMutationInFlight is returned when a mutation for the same
// (user, relation, movie) key is already running. The second call is
// dropped rather than queued; the first call's outcome stands.
var ErrMutationInFlight = errors.New("mutation already in flight")

// inflightGuard tracks running mutations by key so concurrent toggles on
// the same relation cannot interleave.
type inflightGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{keys: make(map[string]struct{})}
}

// acquire reserves the key, or returns ErrMutationInFlight when it is
// already held.
func (g *inflightGuard) acquire(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.keys[key]; held {
		metrics.MutationsDropped.Inc()
		return fmt.Errorf("%w: %s", ErrMutationInFlight, key)
	}
	g.keys[key] = struct{}{}
	return nil
}

func (g *inflightGuard) release(key string) {
	g.mu.Lock()
	delete(g.keys, key)
	g.mu.Unlock()
}

func mutationKey(userID, relation, movieID string) string {
	return userID + ":" + relation + ":" + movieID
}
