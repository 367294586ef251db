// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

// Package metrics provides Prometheus instrumentation for the remote client,
// the catalog store, the session gate and the personalization sync layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Remote client metrics
	RemoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviehub_remote_requests_total",
			Help: "Total number of requests to the remote MovieHub service",
		},
		[]string{"operation", "result"}, // result: "success", "failure"
	)

	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviehub_remote_request_duration_seconds",
			Help:    "Duration of requests to the remote MovieHub service",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviehub_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviehub_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviehub_circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviehub_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive circuit breaker failures",
		},
		[]string{"name"},
	)

	// Catalog metrics
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviehub_catalog_movies",
			Help: "Number of movies in the current catalog snapshot",
		},
	)

	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviehub_catalog_refreshes_total",
			Help: "Total number of catalog refresh attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Session gate metrics
	GateDenials = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviehub_gate_denials_total",
			Help: "Total number of session-gated actions refused as anonymous",
		},
	)

	// Personalization metrics
	FallbackRecoveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviehub_fallback_recoveries_total",
			Help: "Total number of fallback attempts after a failed primary mutation",
		},
		[]string{"result"}, // "recovered", "failed"
	)

	MutationsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviehub_mutations_dropped_total",
			Help: "Total number of mutations dropped by the per-relation in-flight guard",
		},
	)
)
