// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

// Package config loads service configuration with koanf.
//
// Sources are merged in order of increasing priority:
//
//  1. struct defaults (defaultConfig)
//  2. YAML config file (first of DefaultConfigPaths, or CONFIG_PATH)
//  3. environment variables (MOVIEHUB_ prefix, underscores as separators,
//     e.g. MOVIEHUB_REMOTE_BASEURL overrides remote.baseurl)
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moviehub/config.yaml",
	"/etc/moviehub/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "MOVIEHUB_"

// Config is the root service configuration.
type Config struct {
	Remote  RemoteConfig  `koanf:"remote"`
	Server  ServerConfig  `koanf:"server"`
	Session SessionConfig `koanf:"session"`
	Catalog CatalogConfig `koanf:"catalog"`
	Logging LoggingConfig `koanf:"logging"`
}

// RemoteConfig configures the client for the remote MovieHub service.
type RemoteConfig struct {
	// BaseURL is the root of the remote service, e.g. http://localhost:8080
	BaseURL string `koanf:"baseurl"`

	// Timeout bounds a single request-response round trip.
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond and RequestBurst bound outgoing request rate.
	RequestsPerSecond float64 `koanf:"requestspersecond"`
	RequestBurst      int     `koanf:"requestburst"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Timeout           time.Duration `koanf:"timeout"`
	CORSOrigins       []string      `koanf:"corsorigins"`
	RateLimitRequests int           `koanf:"ratelimitrequests"`
	RateLimitWindow   time.Duration `koanf:"ratelimitwindow"`
}

// SessionConfig configures durable session storage.
type SessionConfig struct {
	// StorePath is the BadgerDB directory for the session record.
	StorePath string `koanf:"storepath"`

	// TTL is how long a stored session stays valid without re-login.
	TTL time.Duration `koanf:"ttl"`

	// CleanupInterval is how often expired records are purged.
	CleanupInterval time.Duration `koanf:"cleanupinterval"`
}

// CatalogConfig configures the catalog snapshot and derived view limits.
type CatalogConfig struct {
	// RefreshInterval is how often the background refresher re-fetches the
	// collection. Zero disables background refresh.
	RefreshInterval time.Duration `koanf:"refreshinterval"`

	// SnapshotTTL is how long a snapshot is served before an on-demand
	// re-fetch is attempted.
	SnapshotTTL time.Duration `koanf:"snapshotttl"`

	PopularLimit int `koanf:"popularlimit"`
	LatestLimit  int `koanf:"latestlimit"`
	SimilarLimit int `koanf:"similarlimit"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Remote: RemoteConfig{
			BaseURL:           "http://localhost:8080",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 10,
			RequestBurst:      5,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8090,
			Timeout:           30 * time.Second,
			CORSOrigins:       []string{},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Session: SessionConfig{
			StorePath:       "/data/sessions",
			TTL:             24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Catalog: CatalogConfig{
			RefreshInterval: 5 * time.Minute,
			SnapshotTTL:     time.Minute,
			PopularLimit:    10,
			LatestLimit:     10,
			SimilarLimit:    6,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyTransform), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// findConfigFile resolves the config file path, honoring CONFIG_PATH.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envKeyTransform maps MOVIEHUB_REMOTE_BASEURL to remote.baseurl.
func envKeyTransform(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", ".")
}

// Validate checks invariants that would make the service unusable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Remote.BaseURL) == "" {
		return fmt.Errorf("remote.baseurl is required")
	}
	if !strings.HasPrefix(c.Remote.BaseURL, "http://") && !strings.HasPrefix(c.Remote.BaseURL, "https://") {
		return fmt.Errorf("remote.baseurl must be an http(s) URL, got %q", c.Remote.BaseURL)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Catalog.SimilarLimit < 0 || c.Catalog.PopularLimit < 0 || c.Catalog.LatestLimit < 0 {
		return fmt.Errorf("catalog limits must not be negative")
	}
	return nil
}
