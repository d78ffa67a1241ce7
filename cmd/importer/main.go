package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"neighborhood-value-api/internal/config"

	"github.com/jackc/pgx/v5"
)

type NeighborhoodRecord struct {
	Name               string
	County             string
	Lat                float64
	Lon                float64
	TotalPopulation    int
	MedianIncome       float64
	MedianRent         float64
	MedianAge          int
	CollegeEducatedPct float64
	RenterPct          float64
	UnemploymentRate   float64
	Bedrooms           int
	AmenityScore       float64
	TransitScore       float64
	SafetyScore        float64
	SchoolScore        float64
	GrowthScore        float64
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	// Ensure table exists
	err = createTableIfNotExists(conn)
	if err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	err = insertRecords(conn, records)
	if err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	err = verifyImport(conn, len(records))
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records\n", len(records))
}

func parseCSV(filePath string) ([]NeighborhoodRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	_, err = reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []NeighborhoodRecord
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) != 17 {
			return nil, fmt.Errorf("line %d: invalid record length: %d, expected 17 columns", line, len(record))
		}

		n, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, n)
	}

	return records, nil
}

func parseRecord(record []string) (NeighborhoodRecord, error) {
	var n NeighborhoodRecord
	var err error

	n.Name = record[0]
	n.County = record[1]
	if n.Name == "" || n.County == "" {
		return n, fmt.Errorf("name and county are required")
	}

	floats := []struct {
		dst   *float64
		col   int
		label string
	}{
		{&n.Lat, 2, "latitude"},
		{&n.Lon, 3, "longitude"},
		{&n.MedianIncome, 5, "median_income"},
		{&n.MedianRent, 6, "median_rent"},
		{&n.CollegeEducatedPct, 8, "college_educated_pct"},
		{&n.RenterPct, 9, "renter_pct"},
		{&n.UnemploymentRate, 10, "unemployment_rate"},
		{&n.AmenityScore, 12, "amenity_score"},
		{&n.TransitScore, 13, "transit_score"},
		{&n.SafetyScore, 14, "safety_score"},
		{&n.SchoolScore, 15, "school_score"},
		{&n.GrowthScore, 16, "growth_score"},
	}
	for _, f := range floats {
		*f.dst, err = strconv.ParseFloat(record[f.col], 64)
		if err != nil {
			return n, fmt.Errorf("invalid %s: %s", f.label, record[f.col])
		}
	}

	ints := []struct {
		dst   *int
		col   int
		label string
	}{
		{&n.TotalPopulation, 4, "total_population"},
		{&n.MedianAge, 7, "median_age"},
		{&n.Bedrooms, 11, "bedrooms"},
	}
	for _, f := range ints {
		*f.dst, err = strconv.Atoi(record[f.col])
		if err != nil {
			return n, fmt.Errorf("invalid %s: %s", f.label, record[f.col])
		}
	}

	if n.MedianRent <= 0 {
		return n, fmt.Errorf("median_rent must be positive: %f", n.MedianRent)
	}
	if n.Bedrooms < 0 {
		return n, fmt.Errorf("bedrooms must be non-negative: %d", n.Bedrooms)
	}
	// The store contract promises sub-scores already bounded to [0, 100].
	scores := map[string]float64{
		"amenity_score": n.AmenityScore,
		"transit_score": n.TransitScore,
		"safety_score":  n.SafetyScore,
		"school_score":  n.SchoolScore,
		"growth_score":  n.GrowthScore,
	}
	for label, v := range scores {
		if v < 0 || v > 100 {
			return n, fmt.Errorf("%s out of range [0,100]: %f", label, v)
		}
	}

	return n, nil
}

func createTableIfNotExists(conn *pgx.Conn) error {
	query := `
	CREATE TABLE IF NOT EXISTS neighborhoods (
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
	CREATE INDEX IF NOT EXISTS neighborhoods_county_idx ON neighborhoods (county);
	CREATE INDEX IF NOT EXISTS neighborhoods_median_rent_idx ON neighborhoods (median_rent);
	`
	_, err := conn.Exec(context.Background(), query)
	return err
}

func insertRecords(conn *pgx.Conn, records []NeighborhoodRecord) error {
	// Re-seed from scratch so the import is repeatable.
	_, err := conn.Exec(context.Background(), "DELETE FROM neighborhoods")
	if err != nil {
		return err
	}

	// Use CopyFrom for bulk insert
	_, err = conn.CopyFrom(
		context.Background(),
		pgx.Identifier{"neighborhoods"},
		[]string{
			"name", "county", "latitude", "longitude", "total_population",
			"median_income", "median_rent", "median_age", "college_educated_pct",
			"renter_pct", "unemployment_rate", "bedrooms", "amenity_score",
			"transit_score", "safety_score", "school_score", "growth_score",
		},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			r := records[i]
			return []interface{}{
				r.Name, r.County, r.Lat, r.Lon, r.TotalPopulation,
				r.MedianIncome, r.MedianRent, r.MedianAge, r.CollegeEducatedPct,
				r.RenterPct, r.UnemploymentRate, r.Bedrooms, r.AmenityScore,
				r.TransitScore, r.SafetyScore, r.SchoolScore, r.GrowthScore,
			}, nil
		}),
	)
	return err
}

func verifyImport(conn *pgx.Conn, expectedCount int) error {
	var count int
	err := conn.QueryRow(context.Background(), "SELECT COUNT(*) FROM neighborhoods").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}

	var name string
	var rent float64
	err = conn.QueryRow(context.Background(), "SELECT name, median_rent FROM neighborhoods ORDER BY name LIMIT 1").Scan(&name, &rent)
	if err != nil {
		return fmt.Errorf("failed to check sample record: %w", err)
	}

	fmt.Printf("Sample record: %s ($%.0f/mo)\n", name, rent)
	return nil
}
