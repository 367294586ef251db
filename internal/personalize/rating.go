// MovieHub - Movie Catalog and Personalization Core
// Copyright 2026 MovieHub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviehub/moviehub

package personalize

import (
	"github.com/moviehub/moviehub/internal/models"
)

// Summarize computes the mean rating and review count for a movie. An
// empty review set yields average 0 and count 0, never a division by
// zero. The average is the plain arithmetic mean so a locally computed
// aggregate matches what the rating endpoint would have returned.
func Summarize(movieID string, reviews []models.Review) *models.RatingSummary {
	summary := &models.RatingSummary{MovieID: movieID}
	if len(reviews) == 0 {
		return summary
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}

	summary.Count = len(reviews)
	summary.Average = float64(total) / float64(len(reviews))
	return summary
}
