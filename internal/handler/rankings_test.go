package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"neighborhood-value-api/internal/models"
	"neighborhood-value-api/internal/observability"
	"neighborhood-value-api/internal/scoring"
	"neighborhood-value-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRankingService is a mock implementation of the RankingService interface
type MockRankingService struct {
	mock.Mock
}

func (m *MockRankingService) Rank(ctx context.Context, req service.RankRequest) ([]models.ScoredNeighborhood, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScoredNeighborhood), args.Error(1)
}

func performRequest(t *testing.T, handlerFunc gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)

	handlerFunc(c)
	return w
}

func TestRankingHandler_Rankings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	scored := []models.ScoredNeighborhood{
		{
			Neighborhood: models.Neighborhood{Name: "Echo Park", County: "Los Angeles", MedianRent: 1400},
			ValueScore:   72.5,
			Rank:         1,
			Rating:       scoring.RatingGood,
		},
	}

	tests := []struct {
		name           string
		target         string
		mockScored     []models.ScoredNeighborhood
		mockError      error
		expectCall     bool
		expectedStatus int
	}{
		{
			name:           "missing budget",
			target:         "/api/v1/rankings",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed budget",
			target:         "/api/v1/rankings?budget=cheap",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed weight",
			target:         "/api/v1/rankings?budget=2000&w_safety=high",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed bedrooms",
			target:         "/api/v1/rankings?budget=2000&bedrooms=-2",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-positive budget rejected by service",
			target:         "/api/v1/rankings?budget=-100",
			mockError:      scoring.ErrInvalidBudget,
			expectCall:     true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "degenerate weights rejected by service",
			target:         "/api/v1/rankings?budget=2000&w_safety=0",
			mockError:      scoring.ErrInvalidWeight,
			expectCall:     true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			target:         "/api/v1/rankings?budget=2000",
			mockError:      assert.AnError,
			expectCall:     true,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "successful ranking",
			target:         "/api/v1/rankings?budget=2000&county=Los+Angeles",
			mockScored:     scored,
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty result is 200",
			target:         "/api/v1/rankings?budget=501",
			mockScored:     []models.ScoredNeighborhood{},
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockRankingService)
			handler := NewRankingHandler(mockSvc, observability.NewMetricsForTesting())

			if tt.expectCall {
				mockSvc.On("Rank", mock.Anything, mock.Anything).Return(tt.mockScored, tt.mockError)
			}

			// Execute
			w := performRequest(t, handler.Rankings, tt.target)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var body []models.ScoredNeighborhood
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.mockScored, body)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestRankingHandler_Rankings_RequestMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockRankingService)
	handler := NewRankingHandler(mockSvc, observability.NewMetricsForTesting())

	zero := 0
	expected := service.RankRequest{
		County:   "Oakland",
		Bedrooms: &zero,
		Budget:   1800,
		Weights:  scoring.Weights{Affordability: 1, Safety: 0.5},
	}
	mockSvc.On("Rank", mock.Anything, expected).Return([]models.ScoredNeighborhood{}, nil)

	w := performRequest(t, handler.Rankings,
		"/api/v1/rankings?budget=1800&county=Oakland&bedrooms=studio&w_affordability=1&w_safety=0.5")

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRankingHandler_Rankings_DefaultWeights(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockRankingService)
	handler := NewRankingHandler(mockSvc, observability.NewMetricsForTesting())

	mockSvc.On("Rank", mock.Anything, mock.MatchedBy(func(req service.RankRequest) bool {
		return req.Weights == scoring.DefaultWeights()
	})).Return([]models.ScoredNeighborhood{}, nil)

	w := performRequest(t, handler.Rankings, "/api/v1/rankings?budget=2000")

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
