// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package personalize

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/moviehub/moviehub/internal/metrics"
)

// attemptWithFallback runs primary, and on failure runs fallback. A
// successful fallback turns the whole operation into a success. When both
// fail, the PRIMARY error is reported; the fallback error is only logged.
// The primary error describes the intended action, so surfacing the
// fallback's instead would mislead the caller.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func attemptWithFallback(ctx context.Context, logger zerolog.Logger, operation string, primary, fallback func(ctx context.Context) error) error {
	primaryErr := primary(ctx)
	if primaryErr == nil {
		return nil
	}

	fallbackErr := fallback(ctx)
	if fallbackErr == nil {
		metrics.FallbackRecoveries.WithLabelValues("recovered").Inc()
		logger.Debug().
			Str("operation", operation).
			AnErr("primary_error", primaryErr).
			Msg("primary path failed, fallback recovered")
		return nil
	}

	metrics.FallbackRecoveries.WithLabelValues("failed").Inc()
	logger.Warn().
		Str("operation", operation).
		AnErr("primary_error", primaryErr).
		AnErr("fallback_error", fallbackErr).
		Msg("both primary and fallback failed")
	return primaryErr
}
