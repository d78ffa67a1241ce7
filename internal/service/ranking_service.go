package service

import (
	"context"
	"fmt"
	"time"

	"neighborhood-value-api/internal/models"
	"neighborhood-value-api/internal/observability"
	"neighborhood-value-api/internal/repository"
	"neighborhood-value-api/internal/scoring"

	"github.com/patrickmn/go-cache"
)

// RankingService computes ranked value scores for neighborhoods matching a
// filter. Results are cached per (filter, budget, weights) combination since
// scores are pure derived views of the stored records.
type RankingService struct {
	repo    NeighborhoodRepository
	tiers   scoring.TierThresholds
	cache   *cache.Cache
	metrics *observability.Metrics
}

// Repository interface for dependency injection
type NeighborhoodRepository interface {
	ListNeighborhoods(ctx context.Context, filter repository.Filter) ([]models.Neighborhood, error)
}

// RankRequest carries the user's filter, budget, and priority weights.
type RankRequest struct {
	County   string
	Bedrooms *int
	Budget   float64
	Weights  scoring.Weights
}

// NewRankingService creates a new ranking service. cacheTTL bounds how long
// a computed ranking may be served before the store is consulted again.
func NewRankingService(repo NeighborhoodRepository, metrics *observability.Metrics, cacheTTL time.Duration) *RankingService {
	return &RankingService{
		repo:    repo,
		tiers:   scoring.DefaultTierThresholds(),
		cache:   cache.New(cacheTTL, 2*cacheTTL),
		metrics: metrics,
	}
}

// Rank fetches the neighborhoods matching the request's filter, scores them
// under the request's weights and budget, and returns them ranked with
// rating labels attached. An empty match set is a valid empty result, not an
// error.
func (s *RankingService) Rank(ctx context.Context, req RankRequest) ([]models.ScoredNeighborhood, error) {
	// Validate before touching the store so degenerate input never costs a
	// query.
	if req.Budget <= 0 {
		return nil, scoring.ErrInvalidBudget
	}
	if err := req.Weights.Validate(); err != nil {
		return nil, err
	}

	key := rankCacheKey(req)
	if cached, found := s.cache.Get(key); found {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return cached.([]models.ScoredNeighborhood), nil
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	filter := repository.Filter{
		County:   req.County,
		MaxRent:  req.Budget,
		Bedrooms: req.Bedrooms,
	}
	records, err := s.repo.ListNeighborhoods(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list neighborhoods: %w", err)
	}

	start := time.Now()
	scored, err := scoring.Score(records, req.Weights, req.Budget)
	if err != nil {
		return nil, err
	}
	s.metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	s.metrics.NeighborhoodsScored.Observe(float64(len(scored)))

	for i := range scored {
		scored[i].Rating = s.tiers.Tier(scored[i].ValueScore)
	}

	s.cache.Set(key, scored, cache.DefaultExpiration)
	return scored, nil
}

func rankCacheKey(req RankRequest) string {
	bedrooms := "any"
	if req.Bedrooms != nil {
		bedrooms = fmt.Sprintf("%d", *req.Bedrooms)
	}
	w := req.Weights
	return fmt.Sprintf("rankings:%s:%.2f:%s:%g:%g:%g:%g:%g:%g",
		req.County, req.Budget, bedrooms,
		w.Affordability, w.Amenities, w.Transit, w.Safety, w.Schools, w.Growth)
}
