// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviehub/moviehub/internal/metrics"
	"github.com/moviehub/moviehub/internal/models"
	"github.com/moviehub/moviehub/internal/remote"
)

// ErrAuthenticationRequired gates personalization features. It signals a
// feature needs a login, not a failure; callers map it to a sign-in prompt.
var ErrAuthenticationRequired = errors.New("authentication required")

// Manager holds the current session in memory, backed by the durable store.
// The stored record is loaded lazily on first use so a login survives a
// restart. All methods are safe for concurrent use.
type Manager struct {
	client remote.ClientInterface
	store  *Store
	logger zerolog.Logger
	ttl    time.Duration

	mu      sync.RWMutex
	current *Record
	loaded  bool
}

// NewManager creates a session manager over the given remote client and
// durable store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewManager(client remote.ClientInterface, store *Store, ttl time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		logger: logger.With().Str("component", "session").Logger(),
		ttl:    ttl,
	}
}

// Current returns the active session record, or nil when anonymous.
func (m *Manager) Current(ctx context.Context) *Record {
	m.mu.RLock()
	if m.loaded {
		record := m.current
		m.mu.RUnlock()
		return record
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		m.restore(ctx)
	}
	return m.current
}

// restore loads the durable record into memory (must hold mu). A missing or
// partial record leaves the session anonymous.
func (m *Manager) restore(ctx context.Context) {
	m.loaded = true

	record, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return
	}
	if err != nil {
		m.logger.Warn().Err(err).Msg("session restore failed, starting anonymous")
		return
	}
	if !record.Usable() {
		m.logger.Warn().Msg("stored session incomplete, discarding")
		return
	}

	m.current = record
	m.logger.Info().Str("user_id", record.UserID).Msg("session restored")
}

// Require returns the active session or ErrAuthenticationRequired when
// anonymous. Personalization operations call this before touching the
// remote service.
func (m *Manager) Require(ctx context.Context) (*Record, error) {
	record := m.Current(ctx)
	if !record.Usable() {
		metrics.GateDenials.Inc()
		return nil, ErrAuthenticationRequired
	}
	return record, nil
}

// Token returns the active session token, or empty when anonymous. Wired
// into the remote client as its TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loaded && m.current != nil {
		return m.current.Token
	}
	return ""
}

// Login authenticates against the remote service and installs the returned
// user as the active session.
func (m *Manager) Login(ctx context.Context, email, password string) (*Record, error) {
	user, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.install(ctx, user)
}

// Register creates an account on the remote service and installs the new
// user as the active session.
func (m *Manager) Register(ctx context.Context, displayName, email, password string) (*Record, error) {
	user, err := m.client.Register(ctx, displayName, email, password)
	if err != nil {
		return nil, err
	}
	return m.install(ctx, user)
}

// install persists and activates a remote user record. A response missing
// the id or email is rejected rather than stored half-usable.
func (m *Manager) install(ctx context.Context, user *models.UserRecord) (*Record, error) {
	if user == nil || user.ID == "" || user.Email == "" {
		return nil, fmt.Errorf("remote returned incomplete user record")
	}

	now := time.Now()
	record := &Record{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Token:       user.Token,
		CreatedAt:   now,
	}
	if m.ttl > 0 {
		record.ExpiresAt = now.Add(m.ttl)
	}

	if err := m.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.current = record
	m.loaded = true
	m.mu.Unlock()

	m.logger.Info().Str("user_id", record.UserID).Msg("session established")
	return record, nil
}

// Logout clears the session. The remote logout is best effort: the local
// record is removed even when the remote call fails, so the client never
// stays signed in against the user's intent.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.client.Logout(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
	}

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	m.mu.Lock()
	m.current = nil
	m.loaded = true
	m.mu.Unlock()

	m.logger.Info().Msg("session cleared")
	return nil
}

// Profile fetches the fresh remote profile for the active session.
func (m *Manager) Profile(ctx context.Context) (*models.UserRecord, error) {
	record, err := m.Require(ctx)
	if err != nil {
		return nil, err
	}
	return m.client.User(ctx, record.UserID)
}

// CleanupExpired purges an expired durable record and drops the in-memory
// session when it has passed its expiry.
func (m *Manager) CleanupExpired(ctx context.Context) error {
	removed, err := m.store.CleanupExpired(ctx)
	if err != nil {
		return err
	}
	if removed {
		m.logger.Info().Msg("expired session purged")
	}

	m.mu.Lock()
	if m.current != nil && m.current.IsExpired() {
		m.current = nil
	}
	m.mu.Unlock()

	return nil
}
