package service

import (
	"context"
	"fmt"

	"neighborhood-value-api/internal/models"
	"neighborhood-value-api/internal/repository"
	"neighborhood-value-api/internal/scoring"
)

// HighValueThreshold is the value score at or above which a neighborhood
// counts as a high-value option in the market overview.
const HighValueThreshold = 70.0

// MarketService produces market-level summaries across the full record set.
type MarketService struct {
	repo MarketRepository
}

// Repository interface for dependency injection
type MarketRepository interface {
	ListNeighborhoods(ctx context.Context, filter repository.Filter) ([]models.Neighborhood, error)
	ListCounties(ctx context.Context) ([]string, error)
	CountyStats(ctx context.Context, county string) (*models.CountyStats, error)
	TopCounties(ctx context.Context, limit int) ([]models.CountySummary, error)
}

// NewMarketService creates a new market service.
func NewMarketService(repo MarketRepository) *MarketService {
	return &MarketService{repo: repo}
}

// Overview summarizes the whole market for a budget and weight profile:
// record count, average rent, average value score, neighborhoods within
// budget, and high-value options.
func (s *MarketService) Overview(ctx context.Context, budget float64, weights scoring.Weights) (*models.MarketOverview, error) {
	if budget <= 0 {
		return nil, scoring.ErrInvalidBudget
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	records, err := s.repo.ListNeighborhoods(ctx, repository.Filter{})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list neighborhoods: %w", err)
	}

	overview := &models.MarketOverview{Neighborhoods: len(records)}
	if len(records) == 0 {
		return overview, nil
	}

	scored, err := scoring.Score(records, weights, budget)
	if err != nil {
		return nil, err
	}

	var rentSum, scoreSum float64
	for _, n := range scored {
		rentSum += n.MedianRent
		scoreSum += n.ValueScore
		if n.MedianRent <= budget {
			overview.WithinBudget++
		}
		if n.ValueScore >= HighValueThreshold {
			overview.HighValue++
		}
	}
	overview.AvgRent = rentSum / float64(len(scored))
	overview.AvgValueScore = scoreSum / float64(len(scored))

	return overview, nil
}

// Counties returns the distinct counties available for filtering.
func (s *MarketService) Counties(ctx context.Context) ([]string, error) {
	counties, err := s.repo.ListCounties(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list counties: %w", err)
	}
	return counties, nil
}

// CountyStats returns rent statistics for a county. repository.ErrNotFound
// passes through when the county has no rows.
func (s *MarketService) CountyStats(ctx context.Context, county string) (*models.CountyStats, error) {
	if county == "" {
		return nil, fmt.Errorf("service: county cannot be empty")
	}

	stats, err := s.repo.CountyStats(ctx, county)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get county stats: %w", err)
	}
	return stats, nil
}

// TopCounties returns the per-county summaries, cheapest average rent first.
func (s *MarketService) TopCounties(ctx context.Context, limit int) ([]models.CountySummary, error) {
	if limit <= 0 {
		limit = 10
	}

	summaries, err := s.repo.TopCounties(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get top counties: %w", err)
	}
	return summaries, nil
}
