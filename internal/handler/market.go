package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"neighborhood-value-api/internal/models"
	"neighborhood-value-api/internal/repository"
	"neighborhood-value-api/internal/scoring"

	"github.com/gin-gonic/gin"
)

// MarketHandler handles county and market-overview requests
type MarketHandler struct {
	service MarketService
}

// Service interface for dependency injection
type MarketService interface {
	Overview(ctx context.Context, budget float64, weights scoring.Weights) (*models.MarketOverview, error)
	Counties(ctx context.Context) ([]string, error)
	CountyStats(ctx context.Context, county string) (*models.CountyStats, error)
	TopCounties(ctx context.Context, limit int) ([]models.CountySummary, error)
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(svc MarketService) *MarketHandler {
	return &MarketHandler{service: svc}
}

// Overview handles GET /api/v1/overview requests
func (h *MarketHandler) Overview(c *gin.Context) {
	budget, err := parseBudget(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weights, err := parseWeights(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	overview, err := h.service.Overview(c.Request.Context(), budget, weights)
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidWeight) || errors.Is(err, scoring.ErrInvalidBudget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

// Counties handles GET /api/v1/counties requests
func (h *MarketHandler) Counties(c *gin.Context) {
	counties, err := h.service.Counties(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if counties == nil {
		counties = []string{}
	}
	c.JSON(http.StatusOK, counties)
}

// CountyStats handles GET /api/v1/counties/:county/stats requests
func (h *MarketHandler) CountyStats(c *gin.Context) {
	county := c.Param("county")

	stats, err := h.service.CountyStats(c.Request.Context(), county)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "county not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// TopCounties handles GET /api/v1/counties/top requests
func (h *MarketHandler) TopCounties(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: must be a positive integer"})
			return
		}
		limit = parsed
	}

	summaries, err := h.service.TopCounties(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if summaries == nil {
		summaries = []models.CountySummary{}
	}
	c.JSON(http.StatusOK, summaries)
}
