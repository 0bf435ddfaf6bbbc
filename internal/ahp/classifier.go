package ahp

import (
	"fmt"
	"math"
)

// Category is one of four ordered recommendation labels.
type Category string

const (
	HighlySuitable     Category = "highly_suitable"
	ModeratelySuitable Category = "moderately_suitable"
	MarginallySuitable Category = "marginally_suitable"
	NotSuitable        Category = "not_suitable"
)

// Label returns the human-readable form of a category.
func (c Category) Label() string {
	switch c {
	case HighlySuitable:
		return "Highly Suitable"
	case ModeratelySuitable:
		return "Moderately Suitable"
	case MarginallySuitable:
		return "Marginally Suitable"
	case NotSuitable:
		return "Not Suitable"
	default:
		return string(c)
	}
}

// Thresholds define the lower bounds of the top three score bins. Each bin is
// closed at its lower bound, so a score exactly on a threshold lands in the
// higher category. They are configuration, not constants, so deployments can
// recalibrate without touching the scoring code.
type Thresholds struct {
	Highly     float64 `yaml:"highly"`
	Moderately float64 `yaml:"moderately"`
	Marginally float64 `yaml:"marginally"`
}

// DefaultThresholds returns the standard 0.75 / 0.50 / 0.25 bins.
func DefaultThresholds() Thresholds {
	return Thresholds{Highly: 0.75, Moderately: 0.50, Marginally: 0.25}
}

// Validate checks that thresholds are strictly ordered inside (0, 1).
func (t Thresholds) Validate() error {
	vals := []float64{t.Marginally, t.Moderately, t.Highly}
	prev := 0.0
	for _, v := range vals {
		if v <= prev || v >= 1 || math.IsNaN(v) {
			return fmt.Errorf("thresholds must satisfy 0 < marginally < moderately < highly < 1, got %+v", t)
		}
		prev = v
	}
	return nil
}

// Classify maps a suitability score into its recommendation category.
func (t Thresholds) Classify(score float64) Category {
	switch {
	case score >= t.Highly:
		return HighlySuitable
	case score >= t.Moderately:
		return ModeratelySuitable
	case score >= t.Marginally:
		return MarginallySuitable
	default:
		return NotSuitable
	}
}
