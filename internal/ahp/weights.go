package ahp

import (
	"fmt"
	"math"
)

// weightSumTolerance is the allowed deviation of a weight vector's sum from 1.0.
const weightSumTolerance = 1e-6

// WeightVector maps each criterion name to its non-negative priority weight.
// A valid vector covers the registry exactly and sums to 1.0 ± 1e-6.
type WeightVector map[string]float64

// Sum returns the total of all weights.
func (w WeightVector) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// Validate checks that no weight is negative and the sum is 1.0 within
// tolerance.
func (w WeightVector) Validate() error {
	for name, v := range w {
		if v < 0 {
			return fmt.Errorf("%w: %q is %f", ErrInvalidWeight, name, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %.8f, must sum to 1.0", ErrInvalidWeight, w.Sum())
	}
	return nil
}

// ManualWeights builds a WeightVector from user-adjusted weights, renormalizing
// so the sum is exactly 1. Negative weights and an all-zero set are rejected;
// coverage of the registry is enforced.
func ManualWeights(reg *Registry, raw map[string]float64) (WeightVector, error) {
	names := make(map[string]bool, len(raw))
	var sum float64
	for name, v := range raw {
		if v < 0 {
			return nil, fmt.Errorf("%w: %q is %f", ErrInvalidWeight, name, v)
		}
		names[name] = true
		sum += v
	}
	if err := reg.checkCovers(names, "weights"); err != nil {
		return nil, err
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeight)
	}
	w := make(WeightVector, len(raw))
	for name, v := range raw {
		w[name] = v / sum
	}
	return w, nil
}
