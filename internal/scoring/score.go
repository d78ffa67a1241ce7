// Package scoring computes composite value scores and rankings for
// neighborhood records. All functions are pure: no I/O, no state across
// calls, safe to invoke concurrently.
package scoring

import (
	"errors"
	"sort"

	"neighborhood-value-api/internal/models"
)

var (
	// ErrInvalidWeight reports a malformed weight vector (a negative weight
	// or an all-zero vector).
	ErrInvalidWeight = errors.New("scoring: invalid weight vector")

	// ErrInvalidBudget reports a non-positive monthly rent budget.
	ErrInvalidBudget = errors.New("scoring: budget must be positive")
)

// Score computes a composite value score for each record and returns them
// ranked. The six dimensions (affordability derived from rent and budget,
// plus the five stored sub-scores) are each clamped to [0, 100] and combined
// as a weighted average under the normalized weight vector, so every result
// lies in [0, 100]. Records sort by value score descending with ties broken
// by name ascending, and carry a 1-based rank. An empty input yields an
// empty output.
func Score(records []models.Neighborhood, weights Weights, budget float64) ([]models.ScoredNeighborhood, error) {
	if budget <= 0 {
		return nil, ErrInvalidBudget
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	w := weights.normalized()

	scored := make([]models.ScoredNeighborhood, 0, len(records))
	for _, n := range records {
		affordability := Affordability(n.MedianRent, budget)
		score := w.Affordability*affordability +
			w.Amenities*clamp(n.AmenityScore) +
			w.Transit*clamp(n.TransitScore) +
			w.Safety*clamp(n.SafetyScore) +
			w.Schools*clamp(n.SchoolScore) +
			w.Growth*clamp(n.GrowthScore)

		scored = append(scored, models.ScoredNeighborhood{
			Neighborhood:  n,
			Affordability: affordability,
			ValueScore:    score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].ValueScore != scored[j].ValueScore {
			return scored[i].ValueScore > scored[j].ValueScore
		}
		return scored[i].Name < scored[j].Name
	})

	for i := range scored {
		scored[i].Rank = i + 1
	}

	return scored, nil
}

// Affordability derives the affordability sub-score from a monthly rent and
// a positive budget: 100 when rent is free, 0 at or above budget, linear in
// between. Rents above budget saturate at 0 rather than going negative.
func Affordability(rent, budget float64) float64 {
	return clamp(100 - 100*(rent/budget))
}

// clamp bounds a sub-score to [0, 100]. Out-of-range upstream values are
// clamped silently rather than rejected.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
