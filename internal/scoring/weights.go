package scoring

import (
	"fmt"
)

// Weights defines the relative importance of each scored dimension. Only the
// proportions matter: Score normalizes the vector to sum to 1, so scaling
// every weight by the same factor leaves the ranking unchanged.
type Weights struct {
	Affordability float64 `json:"affordability"`
	Amenities     float64 `json:"amenities"`
	Transit       float64 `json:"transit"`
	Safety        float64 `json:"safety"`
	Schools       float64 `json:"schools"`
	Growth        float64 `json:"growth"`
}

// DefaultWeights returns the default priority profile.
func DefaultWeights() Weights {
	return Weights{
		Affordability: 0.30,
		Amenities:     0.20,
		Transit:       0.20,
		Safety:        0.20,
		Schools:       0.15,
		Growth:        0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Affordability + w.Amenities + w.Transit + w.Safety + w.Schools + w.Growth
}

// Validate checks that no weight is negative and at least one is positive.
func (w Weights) Validate() error {
	for _, v := range w.asList() {
		if v < 0 {
			return fmt.Errorf("%w: negative weight %f", ErrInvalidWeight, v)
		}
	}
	if w.Sum() == 0 {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidWeight)
	}
	return nil
}

// normalized returns a copy scaled so the weights sum to 1. The caller must
// have validated the vector first.
func (w Weights) normalized() Weights {
	sum := w.Sum()
	return Weights{
		Affordability: w.Affordability / sum,
		Amenities:     w.Amenities / sum,
		Transit:       w.Transit / sum,
		Safety:        w.Safety / sum,
		Schools:       w.Schools / sum,
		Growth:        w.Growth / sum,
	}
}

func (w Weights) asList() []float64 {
	return []float64{w.Affordability, w.Amenities, w.Transit, w.Safety, w.Schools, w.Growth}
}
