//go:build integration

package repository

import (
	"context"
	"testing"

	"neighborhood-value-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	// Start PostgreSQL container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	// Connect to database
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	// Create test schema
	_, err = pool.Exec(ctx, `
		CREATE TABLE neighborhoods (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			county VARCHAR(255) NOT NULL,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			total_population INTEGER,
			median_income DOUBLE PRECISION,
			median_rent DOUBLE PRECISION NOT NULL,
			median_age INTEGER,
			college_educated_pct DOUBLE PRECISION,
			renter_pct DOUBLE PRECISION,
			unemployment_rate DOUBLE PRECISION,
			bedrooms INTEGER NOT NULL DEFAULT 0,
			amenity_score DOUBLE PRECISION NOT NULL,
			transit_score DOUBLE PRECISION NOT NULL,
			safety_score DOUBLE PRECISION NOT NULL,
			school_score DOUBLE PRECISION NOT NULL,
			growth_score DOUBLE PRECISION NOT NULL
		);

		CREATE INDEX neighborhoods_county_idx ON neighborhoods (county);
		CREATE INDEX neighborhoods_median_rent_idx ON neighborhoods (median_rent);

		-- Insert test data
		INSERT INTO neighborhoods (name, county, latitude, longitude, total_population, median_income, median_rent, median_age, college_educated_pct, renter_pct, unemployment_rate, bedrooms, amenity_score, transit_score, safety_score, school_score, growth_score) VALUES
		('Echo Park', 'Los Angeles', 34.0780, -118.2607, 42000, 62000, 1800, 33, 41.0, 72.0, 5.1, 1, 74.0, 68.0, 58.0, 52.0, 77.0),
		('Sherman Oaks', 'Los Angeles', 34.1508, -118.4490, 31000, 91000, 2600, 39, 55.0, 60.0, 4.2, 2, 70.0, 52.0, 81.0, 74.0, 55.0),
		('Rockridge', 'Oakland', 37.8444, -122.2514, 12000, 104000, 2450, 38, 71.0, 48.0, 3.6, 2, 86.0, 78.0, 72.0, 83.0, 61.0),
		('Temescal', 'Oakland', 37.8347, -122.2632, 9000, 88000, 2100, 34, 63.0, 66.0, 4.0, 4, 79.0, 74.0, 64.0, 70.0, 72.0);
	`)
	require.NoError(t, err)

	return pool
}

func intPtr(v int) *int { return &v }

func TestRepository_ListNeighborhoods(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	tests := []struct {
		name          string
		filter        Filter
		expectedNames []string
	}{
		{
			name:          "no filter returns all, ordered by name",
			filter:        Filter{},
			expectedNames: []string{"Echo Park", "Rockridge", "Sherman Oaks", "Temescal"},
		},
		{
			name:          "filter by county",
			filter:        Filter{County: "Oakland"},
			expectedNames: []string{"Rockridge", "Temescal"},
		},
		{
			name:          "filter by max rent",
			filter:        Filter{MaxRent: 2100},
			expectedNames: []string{"Echo Park", "Temescal"},
		},
		{
			name:          "filter by county and max rent",
			filter:        Filter{County: "Los Angeles", MaxRent: 2000},
			expectedNames: []string{"Echo Park"},
		},
		{
			name:          "filter by bedrooms exact",
			filter:        Filter{Bedrooms: intPtr(2)},
			expectedNames: []string{"Rockridge", "Sherman Oaks"},
		},
		{
			name:          "filter by bedrooms four-plus",
			filter:        Filter{Bedrooms: intPtr(4)},
			expectedNames: []string{"Temescal"},
		},
		{
			name:          "no matches",
			filter:        Filter{County: "San Diego"},
			expectedNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			neighborhoods, err := repo.ListNeighborhoods(ctx, tt.filter)
			require.NoError(t, err)

			var names []string
			for _, n := range neighborhoods {
				names = append(names, n.Name)
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestRepository_ListNeighborhoods_ScanFields(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)

	neighborhoods, err := repo.ListNeighborhoods(context.Background(), Filter{County: "Oakland", MaxRent: 2200})
	require.NoError(t, err)
	require.Len(t, neighborhoods, 1)

	got := neighborhoods[0]
	assert.Equal(t, "Temescal", got.Name)
	assert.Equal(t, "Oakland", got.County)
	assert.Equal(t, 9000, got.TotalPopulation)
	assert.Equal(t, 2100.0, got.MedianRent)
	assert.Equal(t, 4, got.Bedrooms)
	assert.Equal(t, 79.0, got.AmenityScore)
	assert.Equal(t, 70.0, got.SchoolScore)
}

func TestRepository_ListCounties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)

	counties, err := repo.ListCounties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Los Angeles", "Oakland"}, counties)
}

func TestRepository_CountyStats(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	stats, err := repo.CountyStats(ctx, "Oakland")
	require.NoError(t, err)
	assert.Equal(t, "Oakland", stats.County)
	assert.Equal(t, 2, stats.Neighborhoods)
	assert.InDelta(t, 2275.0, stats.AvgRent, 1e-9)
	assert.Equal(t, 2100.0, stats.MinRent)
	assert.Equal(t, 2450.0, stats.MaxRent)

	_, err = repo.CountyStats(ctx, "Atlantis")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_TopCounties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)

	summaries, err := repo.TopCounties(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Cheapest average rent first: LA averages 2200, Oakland 2275.
	assert.Equal(t, []models.CountySummary{
		{County: "Los Angeles", Neighborhoods: 2, AvgRent: 2200},
		{County: "Oakland", Neighborhoods: 2, AvgRent: 2275},
	}, summaries)

	limited, err := repo.TopCounties(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Los Angeles", limited[0].County)
}
