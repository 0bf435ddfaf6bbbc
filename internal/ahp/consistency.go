package ahp

// DefaultCRLimit is the conventional acceptance threshold for the consistency
// ratio of a pairwise matrix.
const DefaultCRLimit = 0.10

// randomIndex holds Saaty's random-index values, indexed by matrix dimension.
// RI(1) = RI(2) = 0: reciprocal matrices of that size are always consistent.
var randomIndex = [...]float64{
	0,    // n=0 (unused)
	0,    // n=1
	0,    // n=2
	0.58, // n=3
	0.90,
	1.12,
	1.24,
	1.32,
	1.41,
	1.45,
	1.49,
	1.51,
	1.54,
	1.56,
	1.58,
	1.59, // n=15
}

// RandomIndex returns RI(n). Dimensions beyond the published table reuse the
// n=15 value; RI converges near 1.6 for large n.
func RandomIndex(n int) float64 {
	if n < 0 {
		return 0
	}
	if n >= len(randomIndex) {
		return randomIndex[len(randomIndex)-1]
	}
	return randomIndex[n]
}

// ConsistencyRatio computes CR for the matrix given its derived weights.
//
// λ_max is approximated per row as (M·w)_i / w_i and averaged; then
// CI = (λ_max − n)/(n − 1) and CR = CI / RI(n). CR is 0 for n ≤ 2.
func (m *PairwiseMatrix) ConsistencyRatio(w WeightVector) float64 {
	n := len(m.names)
	if n <= 2 {
		return 0
	}

	var lambdaSum float64
	for i, row := range m.cells {
		var dot float64
		for j, v := range row {
			dot += v * w[m.names[j]]
		}
		lambdaSum += dot / w[m.names[i]]
	}
	lambdaMax := lambdaSum / float64(n)

	ci := (lambdaMax - float64(n)) / float64(n-1)
	return ci / RandomIndex(n)
}
