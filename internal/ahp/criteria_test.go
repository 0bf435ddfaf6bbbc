package ahp

import (
	"errors"
	"math"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry([]Criterion{
		{Name: "solar_radiation", Min: 0, Max: 100, Direction: HigherIsBetter},
		{Name: "slope", Min: 0, Max: 30, Direction: LowerIsBetter},
		{Name: "grid_distance", Min: 0, Max: 50, Direction: LowerIsBetter},
	})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	return reg
}

func TestNewRegistryRejectsDegenerateRange(t *testing.T) {
	tests := []struct {
		name      string
		criterion Criterion
	}{
		{"max equals min", Criterion{Name: "flat", Min: 5, Max: 5, Direction: HigherIsBetter}},
		{"max below min", Criterion{Name: "inverted", Min: 10, Max: 2, Direction: HigherIsBetter}},
		{"empty name", Criterion{Min: 0, Max: 1, Direction: HigherIsBetter}},
		{"bad direction", Criterion{Name: "odd", Min: 0, Max: 1, Direction: "sideways"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry([]Criterion{tt.criterion})
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Criterion{
		{Name: "slope", Min: 0, Max: 30, Direction: LowerIsBetter},
		{Name: "slope", Min: 0, Max: 45, Direction: LowerIsBetter},
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for duplicate, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		name      string
		criterion string
		raw       float64
		want      float64
	}{
		{"higher-is-better midpoint", "solar_radiation", 75, 0.75},
		{"lower-is-better inverts", "slope", 22.5, 0.25},
		{"clamped below min", "solar_radiation", -10, 0.0},
		{"clamped above max", "solar_radiation", 150, 1.0},
		{"lower-is-better at min", "grid_distance", 0, 1.0},
		{"lower-is-better at max", "grid_distance", 50, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Normalize(tt.criterion, tt.raw)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Normalize(%s, %g) = %g, want %g", tt.criterion, tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeUnknownCriterion(t *testing.T) {
	reg := testRegistry(t)
	_, err := reg.Normalize("wind_speed", 5)
	if !errors.Is(err, ErrMissingCriterion) {
		t.Errorf("expected ErrMissingCriterion, got %v", err)
	}
}

func TestRegistryNamesKeepOrder(t *testing.T) {
	reg := testRegistry(t)
	names := reg.Names()
	want := []string{"solar_radiation", "slope", "grid_distance"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
