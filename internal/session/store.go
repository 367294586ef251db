// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

// Package session manages the durable login session and gates
// personalization features on it.
//
// The session is a single record persisted in BadgerDB so it survives
// restarts. A record is usable only when both the user ID and email are
// present; anything less is treated as anonymous.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// recordKey is the single well-known key holding the current session. The
// client tracks one login at a time, so there is no per-session keyspace.
const recordKey = "session:current"

// ErrNoSession indicates no stored session record exists.
var ErrNoSession = errors.New("no stored session")

// Record is the persisted login session.
type Record struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Token       string    `json:"token"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Usable reports whether the record represents a complete login. Both the
// user ID and email must be present; a partial record is anonymous.
func (r *Record) Usable() bool {
	return r != nil && r.UserID != "" && r.Email != ""
}

// IsExpired reports whether the record has passed its expiry. A zero
// ExpiresAt never expires.
func (r *Record) IsExpired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// Store persists the session record in BadgerDB.
type Store struct {
	db *badger.DB
}

// NewStore creates a BadgerDB-backed session store.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// Save writes the session record, replacing any previous one.
func (s *Store) Save(_ context.Context, record *Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(recordKey), data)
	})
}

// Load reads the stored session record. Returns ErrNoSession when none
// exists or the stored record has expired.
func (s *Store) Load(_ context.Context) (*Record, error) {
	var record Record

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recordKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSession
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}

	if record.IsExpired() {
		return nil, ErrNoSession
	}

	return &record, nil
}

// Clear removes the stored session record. Clearing an absent record is not
// an error.
func (s *Store) Clear(_ context.Context) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(recordKey))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// CleanupExpired drops the stored record when it has expired. Returns true
// when a record was removed.
func (s *Store) CleanupExpired(ctx context.Context) (bool, error) {
	record, err := s.loadRaw()
	if errors.Is(err, ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !record.IsExpired() {
		return false, nil
	}

	if err := s.Clear(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// loadRaw reads the stored record without the expiry check.
func (s *Store) loadRaw() (*Record, error) {
	var record Record

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recordKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSession
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
