package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"neighborhood-value-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound reports that a query matched no rows.
var ErrNotFound = errors.New("repository: not found")

// Filter narrows a neighborhood listing. Zero values mean "no constraint".
// Bedrooms is exact-match except 4, which matches four or more.
type Filter struct {
	County   string
	MaxRent  float64
	Bedrooms *int
}

// Repository implements neighborhood storage on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const neighborhoodColumns = `
	id,
	name,
	county,
	latitude,
	longitude,
	total_population,
	median_income,
	median_rent,
	median_age,
	college_educated_pct,
	renter_pct,
	unemployment_rate,
	bedrooms,
	amenity_score,
	transit_score,
	safety_score,
	school_score,
	growth_score`

// ListNeighborhoods returns neighborhoods matching the filter, ordered by
// name so the scorer always receives input in a deterministic order.
func (r *Repository) ListNeighborhoods(ctx context.Context, filter Filter) ([]models.Neighborhood, error) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.County != "" {
		args = append(args, filter.County)
		conds = append(conds, fmt.Sprintf("county = $%d", len(args)))
	}
	if filter.MaxRent > 0 {
		args = append(args, filter.MaxRent)
		conds = append(conds, fmt.Sprintf("median_rent <= $%d", len(args)))
	}
	if filter.Bedrooms != nil {
		args = append(args, *filter.Bedrooms)
		if *filter.Bedrooms >= 4 {
			conds = append(conds, fmt.Sprintf("bedrooms >= $%d", len(args)))
		} else {
			conds = append(conds, fmt.Sprintf("bedrooms = $%d", len(args)))
		}
	}

	sql := "SELECT" + neighborhoodColumns + "\n\tFROM neighborhoods"
	if len(conds) > 0 {
		sql += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	sql += "\n\tORDER BY name"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list neighborhoods: %w", err)
	}
	defer rows.Close()

	var neighborhoods []models.Neighborhood
	for rows.Next() {
		n, err := scanNeighborhood(rows)
		if err != nil {
			return nil, err
		}
		neighborhoods = append(neighborhoods, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return neighborhoods, nil
}

func scanNeighborhood(row pgx.Row) (models.Neighborhood, error) {
	var n models.Neighborhood
	err := row.Scan(
		&n.ID,
		&n.Name,
		&n.County,
		&n.Latitude,
		&n.Longitude,
		&n.TotalPopulation,
		&n.MedianIncome,
		&n.MedianRent,
		&n.MedianAge,
		&n.CollegeEducatedPct,
		&n.RenterPct,
		&n.UnemploymentRate,
		&n.Bedrooms,
		&n.AmenityScore,
		&n.TransitScore,
		&n.SafetyScore,
		&n.SchoolScore,
		&n.GrowthScore,
	)
	if err != nil {
		return models.Neighborhood{}, fmt.Errorf("repository: failed to scan neighborhood: %w", err)
	}
	return n, nil
}

// ListCounties returns the distinct counties present in the store, sorted.
func (r *Repository) ListCounties(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT DISTINCT county FROM neighborhoods ORDER BY county")
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list counties: %w", err)
	}
	defer rows.Close()

	var counties []string
	for rows.Next() {
		var county string
		if err := rows.Scan(&county); err != nil {
			return nil, fmt.Errorf("repository: failed to scan county: %w", err)
		}
		counties = append(counties, county)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return counties, nil
}

// CountyStats returns rent statistics for a single county. ErrNotFound is
// returned when the county has no neighborhoods.
func (r *Repository) CountyStats(ctx context.Context, county string) (*models.CountyStats, error) {
	sql := `
		SELECT
			county,
			COUNT(*) AS neighborhoods,
			AVG(median_rent) AS avg_rent,
			MIN(median_rent) AS min_rent,
			MAX(median_rent) AS max_rent,
			AVG(median_income) AS avg_median_income,
			AVG(amenity_score) AS avg_amenity_score,
			AVG(safety_score) AS avg_safety_score
		FROM neighborhoods
		WHERE county = $1
		GROUP BY county
	`

	var stats models.CountyStats
	err := r.db.QueryRow(ctx, sql, county).Scan(
		&stats.County,
		&stats.Neighborhoods,
		&stats.AvgRent,
		&stats.MinRent,
		&stats.MaxRent,
		&stats.AvgMedianIncome,
		&stats.AvgAmenityScore,
		&stats.AvgSafetyScore,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to query county stats: %w", err)
	}

	return &stats, nil
}

// TopCounties returns per-county neighborhood counts and average rents,
// cheapest first, limited to the given number of rows.
func (r *Repository) TopCounties(ctx context.Context, limit int) ([]models.CountySummary, error) {
	sql := `
		SELECT
			county,
			COUNT(*) AS neighborhoods,
			AVG(median_rent) AS avg_rent
		FROM neighborhoods
		GROUP BY county
		ORDER BY avg_rent ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query top counties: %w", err)
	}
	defer rows.Close()

	var summaries []models.CountySummary
	for rows.Next() {
		var s models.CountySummary
		if err := rows.Scan(&s.County, &s.Neighborhoods, &s.AvgRent); err != nil {
			return nil, fmt.Errorf("repository: failed to scan county summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return summaries, nil
}
