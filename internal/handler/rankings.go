package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"neighborhood-value-api/internal/models"
	"neighborhood-value-api/internal/observability"
	"neighborhood-value-api/internal/scoring"
	"neighborhood-value-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RankingHandler handles neighborhood ranking requests
type RankingHandler struct {
	service RankingService
	metrics *observability.Metrics
}

// Service interface for dependency injection
type RankingService interface {
	Rank(ctx context.Context, req service.RankRequest) ([]models.ScoredNeighborhood, error)
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(svc RankingService, metrics *observability.Metrics) *RankingHandler {
	return &RankingHandler{service: svc, metrics: metrics}
}

// Rankings handles GET /api/v1/rankings requests
func (h *RankingHandler) Rankings(c *gin.Context) {
	budget, err := parseBudget(c)
	if err != nil {
		h.metrics.RankingRequests.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bedrooms, err := parseBedrooms(c)
	if err != nil {
		h.metrics.RankingRequests.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weights, err := parseWeights(c)
	if err != nil {
		h.metrics.RankingRequests.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := service.RankRequest{
		County:   c.Query("county"),
		Bedrooms: bedrooms,
		Budget:   budget,
		Weights:  weights,
	}

	scored, err := h.service.Rank(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidWeight) || errors.Is(err, scoring.ErrInvalidBudget) {
			h.metrics.RankingRequests.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.metrics.RankingRequests.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.metrics.RankingRequests.WithLabelValues("success").Inc()
	if scored == nil {
		scored = []models.ScoredNeighborhood{}
	}
	c.JSON(http.StatusOK, scored)
}

func parseBudget(c *gin.Context) (float64, error) {
	budgetStr := c.Query("budget")
	if budgetStr == "" {
		return 0, errors.New("missing required query parameter 'budget'")
	}
	budget, err := strconv.ParseFloat(budgetStr, 64)
	if err != nil {
		return 0, errors.New("invalid budget format")
	}
	return budget, nil
}

// parseBedrooms reads the optional bedrooms filter. "studio" is an alias
// for 0; absent means no constraint.
func parseBedrooms(c *gin.Context) (*int, error) {
	bedroomsStr := c.Query("bedrooms")
	if bedroomsStr == "" {
		return nil, nil
	}
	if strings.EqualFold(bedroomsStr, "studio") {
		zero := 0
		return &zero, nil
	}
	bedrooms, err := strconv.Atoi(bedroomsStr)
	if err != nil || bedrooms < 0 {
		return nil, errors.New("invalid bedrooms: must be a non-negative integer or 'studio'")
	}
	return &bedrooms, nil
}

// parseWeights reads the six optional weight parameters. When none are
// supplied the default priority profile applies; when any is supplied the
// absent ones are treated as zero.
func parseWeights(c *gin.Context) (scoring.Weights, error) {
	params := []string{"w_affordability", "w_amenities", "w_transit", "w_safety", "w_schools", "w_growth"}

	any := false
	values := make(map[string]float64, len(params))
	for _, p := range params {
		raw := c.Query(p)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return scoring.Weights{}, errors.New("invalid " + p + " format")
		}
		values[p] = v
		any = true
	}

	if !any {
		return scoring.DefaultWeights(), nil
	}

	return scoring.Weights{
		Affordability: values["w_affordability"],
		Amenities:     values["w_amenities"],
		Transit:       values["w_transit"],
		Safety:        values["w_safety"],
		Schools:       values["w_schools"],
		Growth:        values["w_growth"],
	}, nil
}
