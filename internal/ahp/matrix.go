package ahp

import (
	"fmt"
	"math"
)

// Saaty scale bounds for pairwise judgments.
const (
	scaleMin = 1.0 / 9.0
	scaleMax = 9.0
)

// reciprocalTolerance is the allowed deviation of entry(i,j)*entry(j,i) from 1.
const reciprocalTolerance = 1e-6

// PairwiseMatrix is a reciprocal comparison matrix over a criteria set.
// Entry (i,j) is the relative importance of criterion i over criterion j on the
// 1/9..9 scale. Structural invariants are enforced at construction, so derived
// weights never see a malformed matrix.
type PairwiseMatrix struct {
	names []string
	cells [][]float64
}

// NewPairwiseMatrix validates shape, diagonal, reciprocity, and scale bounds.
func NewPairwiseMatrix(names []string, cells [][]float64) (*PairwiseMatrix, error) {
	n := len(names)
	if n == 0 {
		return nil, fmt.Errorf("%w: no criteria", ErrInvalidMatrix)
	}
	if len(cells) != n {
		return nil, fmt.Errorf("%w: %d criteria but %d rows", ErrInvalidMatrix, n, len(cells))
	}
	seen := make(map[string]bool, n)
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate criterion %q", ErrInvalidMatrix, name)
		}
		seen[name] = true
	}
	for i, row := range cells {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidMatrix, i, len(row), n)
		}
		for j, v := range row {
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: entry (%d,%d) is %g", ErrInvalidMatrix, i, j, v)
			}
			if v < scaleMin-reciprocalTolerance || v > scaleMax+reciprocalTolerance {
				return nil, fmt.Errorf("%w: entry (%d,%d) = %g outside [1/9, 9]", ErrInvalidMatrix, i, j, v)
			}
		}
		if math.Abs(row[i]-1.0) > reciprocalTolerance {
			return nil, fmt.Errorf("%w: diagonal (%d,%d) = %g, want 1", ErrInvalidMatrix, i, i, row[i])
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(cells[i][j]*cells[j][i]-1.0) > reciprocalTolerance {
				return nil, fmt.Errorf("%w: entries (%d,%d)=%g and (%d,%d)=%g are not reciprocal",
					ErrInvalidMatrix, i, j, cells[i][j], j, i, cells[j][i])
			}
		}
	}
	m := &PairwiseMatrix{
		names: append([]string(nil), names...),
		cells: make([][]float64, n),
	}
	for i, row := range cells {
		m.cells[i] = append([]float64(nil), row...)
	}
	return m, nil
}

// Names returns the criterion names in matrix order.
func (m *PairwiseMatrix) Names() []string {
	return append([]string(nil), m.names...)
}

// Dim returns the matrix dimension.
func (m *PairwiseMatrix) Dim() int { return len(m.names) }

// Weights derives priority weights by the geometric-mean method: the geometric
// mean of each row, normalized so the means sum to 1. For reciprocal matrices
// of this size it matches the principal-eigenvector ranking without an
// iterative solver.
func (m *PairwiseMatrix) Weights(reg *Registry) (WeightVector, error) {
	names := make(map[string]bool, len(m.names))
	for _, name := range m.names {
		names[name] = true
	}
	if err := reg.checkCovers(names, "matrix criteria"); err != nil {
		return nil, err
	}

	n := len(m.names)
	means := make([]float64, n)
	var sum float64
	for i, row := range m.cells {
		logSum := 0.0
		for _, v := range row {
			logSum += math.Log(v)
		}
		means[i] = math.Exp(logSum / float64(n))
		sum += means[i]
	}

	w := make(WeightVector, n)
	for i, name := range m.names {
		w[name] = means[i] / sum
	}
	return w, nil
}
