// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Remote.BaseURL != "http://localhost:8080" {
		t.Errorf("remote.baseurl = %q", cfg.Remote.BaseURL)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("session.ttl = %s", cfg.Session.TTL)
	}
	if cfg.Catalog.SimilarLimit != 6 {
		t.Errorf("catalog.similarlimit = %d", cfg.Catalog.SimilarLimit)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MOVIEHUB_REMOTE_BASEURL", "https://movies.example.com")
	t.Setenv("MOVIEHUB_SERVER_PORT", "9000")
	t.Setenv("MOVIEHUB_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Remote.BaseURL != "https://movies.example.com" {
		t.Errorf("remote.baseurl = %q", cfg.Remote.BaseURL)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(*Config) {}, false},
		{"empty base url", func(c *Config) { c.Remote.BaseURL = " " }, true},
		{"non-http base url", func(c *Config) { c.Remote.BaseURL = "ftp://x" }, true},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero session ttl", func(c *Config) { c.Session.TTL = 0 }, true},
		{"negative limit", func(c *Config) { c.Catalog.SimilarLimit = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate: %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvKeyTransform(t *testing.T) {
	if got := envKeyTransform("MOVIEHUB_REMOTE_BASEURL"); got != "remote.baseurl" {
		t.Errorf("got %q, want remote.baseurl", got)
	}
	if got := envKeyTransform("MOVIEHUB_CATALOG_POPULARLIMIT"); got != "catalog.popularlimit" {
		t.Errorf("got %q, want catalog.popularlimit", got)
	}
}
