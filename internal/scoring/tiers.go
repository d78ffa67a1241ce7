package scoring

// Rating labels for the qualitative tiers.
const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingFair      = "fair"
	RatingPoor      = "poor"
)

// TierThresholds holds the value-score cut points for the qualitative
// ratings. Each tier is inclusive at its lower bound: a score exactly at
// Excellent rates "excellent".
type TierThresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
}

// DefaultTierThresholds returns the standard 80/60/40 cut points.
func DefaultTierThresholds() TierThresholds {
	return TierThresholds{Excellent: 80, Good: 60, Fair: 40}
}

// Tier maps a value score to its qualitative rating label.
func (t TierThresholds) Tier(score float64) string {
	switch {
	case score >= t.Excellent:
		return RatingExcellent
	case score >= t.Good:
		return RatingGood
	case score >= t.Fair:
		return RatingFair
	default:
		return RatingPoor
	}
}
