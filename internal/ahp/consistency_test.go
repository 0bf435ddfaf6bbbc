package ahp

import (
	"math"
	"testing"
)

func TestRandomIndexTable(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{1, 0},
		{2, 0},
		{3, 0.58},
		{4, 0.90},
		{9, 1.45},
		{15, 1.59},
		{20, 1.59}, // beyond table reuses n=15
	}
	for _, tt := range tests {
		if got := RandomIndex(tt.n); got != tt.want {
			t.Errorf("RandomIndex(%d) = %f, want %f", tt.n, got, tt.want)
		}
	}
}

func TestEqualMatrixIsPerfectlyConsistent(t *testing.T) {
	reg := testRegistry(t)
	m := equalMatrix3(t)
	w, err := m.Weights(reg)
	if err != nil {
		t.Fatalf("Weights failed: %v", err)
	}
	if cr := m.ConsistencyRatio(w); math.Abs(cr) > 1e-9 {
		t.Errorf("equal-importance matrix CR = %f, want 0", cr)
	}
}

func TestTwoByTwoAlwaysConsistent(t *testing.T) {
	m, err := NewPairwiseMatrix(
		[]string{"a", "b"},
		[][]float64{{1, 7}, {1.0 / 7.0, 1}},
	)
	if err != nil {
		t.Fatalf("NewPairwiseMatrix failed: %v", err)
	}
	w := WeightVector{"a": 0.875, "b": 0.125}
	if cr := m.ConsistencyRatio(w); cr != 0 {
		t.Errorf("2x2 CR = %f, want 0", cr)
	}
}

func TestMildTransitiveMatrixIsConsistent(t *testing.T) {
	reg := testRegistry(t)
	m, err := NewPairwiseMatrix(
		[]string{"solar_radiation", "slope", "grid_distance"},
		[][]float64{
			{1, 3, 5},
			{1.0 / 3.0, 1, 3},
			{1.0 / 5.0, 1.0 / 3.0, 1},
		},
	)
	if err != nil {
		t.Fatalf("NewPairwiseMatrix failed: %v", err)
	}
	w, err := m.Weights(reg)
	if err != nil {
		t.Fatalf("Weights failed: %v", err)
	}
	cr := m.ConsistencyRatio(w)
	if cr < 0 || cr > DefaultCRLimit {
		t.Errorf("transitive 1-3-5 matrix CR = %f, want within (0, %f]", cr, DefaultCRLimit)
	}
}

func TestContradictoryCycleIsInconsistent(t *testing.T) {
	// A over B, B over C, C over A, all at maximum intensity.
	reg := testRegistry(t)
	m, err := NewPairwiseMatrix(
		[]string{"solar_radiation", "slope", "grid_distance"},
		[][]float64{
			{1, 9, 1.0 / 9.0},
			{1.0 / 9.0, 1, 9},
			{9, 1.0 / 9.0, 1},
		},
	)
	if err != nil {
		t.Fatalf("NewPairwiseMatrix failed: %v", err)
	}
	w, err := m.Weights(reg)
	if err != nil {
		t.Fatalf("Weights failed: %v", err)
	}
	// The cycle is symmetric, so the geometric means tie at 1/3 each.
	for name, v := range w {
		if math.Abs(v-1.0/3.0) > 1e-9 {
			t.Errorf("weight %s = %f, want 1/3", name, v)
		}
	}
	if cr := m.ConsistencyRatio(w); cr <= DefaultCRLimit {
		t.Errorf("contradictory cycle CR = %f, want > %f", cr, DefaultCRLimit)
	}
}
