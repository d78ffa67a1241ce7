package models

// Neighborhood represents a single neighborhood record as stored, combining
// its location, demographic fields, rental market data, and the five raw
// sub-scores supplied by the upstream collectors (each bounded to 0-100).
type Neighborhood struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	County             string  `json:"county"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	TotalPopulation    int     `json:"total_population"`
	MedianIncome       float64 `json:"median_income"`
	MedianRent         float64 `json:"median_rent"`
	MedianAge          int     `json:"median_age"`
	CollegeEducatedPct float64 `json:"college_educated_pct"`
	RenterPct          float64 `json:"renter_pct"`
	UnemploymentRate   float64 `json:"unemployment_rate"`
	Bedrooms           int     `json:"bedrooms"`
	AmenityScore       float64 `json:"amenity_score"`
	TransitScore       float64 `json:"transit_score"`
	SafetyScore        float64 `json:"safety_score"`
	SchoolScore        float64 `json:"school_score"`
	GrowthScore        float64 `json:"growth_score"`
}

// ScoredNeighborhood pairs a Neighborhood with its derived affordability,
// composite value score, rank, and qualitative rating. Derived fields are
// computed per request and never persisted.
type ScoredNeighborhood struct {
	Neighborhood
	Affordability float64 `json:"affordability"`
	ValueScore    float64 `json:"value_score"`
	Rank          int     `json:"rank"`
	Rating        string  `json:"rating"`
}

// CountyStats holds rent statistics for a single county.
type CountyStats struct {
	County          string  `json:"county"`
	Neighborhoods   int     `json:"neighborhoods"`
	AvgRent         float64 `json:"avg_rent"`
	MinRent         float64 `json:"min_rent"`
	MaxRent         float64 `json:"max_rent"`
	AvgMedianIncome float64 `json:"avg_median_income"`
	AvgAmenityScore float64 `json:"avg_amenity_score"`
	AvgSafetyScore  float64 `json:"avg_safety_score"`
}

// CountySummary is one row of the top-counties aggregation.
type CountySummary struct {
	County        string  `json:"county"`
	Neighborhoods int     `json:"neighborhoods"`
	AvgRent       float64 `json:"avg_rent"`
}

// MarketOverview summarizes the market for a given budget and weight profile.
type MarketOverview struct {
	Neighborhoods int     `json:"neighborhoods"`
	AvgRent       float64 `json:"avg_rent"`
	AvgValueScore float64 `json:"avg_value_score"`
	WithinBudget  int     `json:"within_budget"`
	HighValue     int     `json:"high_value"`
}
