package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the ranking API.
type Metrics struct {
	RankingRequests     *prometheus.CounterVec // labels: outcome={success,invalid,error}
	CacheLookups        *prometheus.CounterVec // labels: result={hit,miss}
	ScoringDuration     prometheus.Histogram
	NeighborhoodsScored prometheus.Histogram
}

// NewMetrics creates and registers all API metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RankingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neighborhood_api",
			Name:      "ranking_requests_total",
			Help:      "Ranking requests by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neighborhood_api",
			Name:      "ranking_cache_lookups_total",
			Help:      "Ranking cache lookups by result.",
		}, []string{"result"}),
		ScoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "neighborhood_api",
			Name:      "scoring_duration_seconds",
			Help:      "Duration of a full score-and-rank pass.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		NeighborhoodsScored: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "neighborhood_api",
			Name:      "neighborhoods_scored",
			Help:      "Number of records scored per ranking pass.",
			Buckets:   []float64{1, 5, 10, 25, 50, 75, 100, 200},
		}),
	}

	prometheus.MustRegister(
		m.RankingRequests,
		m.CacheLookups,
		m.ScoringDuration,
		m.NeighborhoodsScored,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RankingRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "neighborhood_api", Name: "ranking_requests_total"}, []string{"outcome"}),
		CacheLookups:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "neighborhood_api", Name: "ranking_cache_lookups_total"}, []string{"result"}),
		ScoringDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "neighborhood_api", Name: "scoring_duration_seconds"}),
		NeighborhoodsScored: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "neighborhood_api", Name: "neighborhoods_scored"}),
	}
}
