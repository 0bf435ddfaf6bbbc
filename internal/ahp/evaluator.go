package ahp

import (
	"log/slog"
	"sort"
)

// Contribution captures one criterion's share of the total score.
type Contribution struct {
	Name       string  `json:"name"`
	Raw        float64 `json:"raw"`
	Normalized float64 `json:"normalized"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
}

// Result is the complete outcome of one suitability evaluation.
//
// Consistent is meaningful only for pairwise-matrix evaluations; manual
// weights set it true by convention. An inconsistent matrix is advisory: the
// score is still computed and returned.
type Result struct {
	Score            float64        `json:"score"`
	Category         Category       `json:"category"`
	Consistent       bool           `json:"consistent"`
	ConsistencyRatio float64        `json:"consistency_ratio"`
	Weights          WeightVector   `json:"weights"`
	Contributions    []Contribution `json:"contributions"`
}

// Evaluator combines a criteria registry with classification thresholds and a
// consistency policy. It holds no per-request state; one Evaluator serves
// concurrent evaluations.
type Evaluator struct {
	registry   *Registry
	thresholds Thresholds
	crLimit    float64
	logger     *slog.Logger
}

// NewEvaluator creates an Evaluator. A crLimit of 0 means DefaultCRLimit.
func NewEvaluator(reg *Registry, thresholds Thresholds, crLimit float64, logger *slog.Logger) *Evaluator {
	if crLimit <= 0 {
		crLimit = DefaultCRLimit
	}
	return &Evaluator{
		registry:   reg,
		thresholds: thresholds,
		crLimit:    crLimit,
		logger:     logger,
	}
}

// Registry returns the evaluator's criteria registry.
func (e *Evaluator) Registry() *Registry { return e.registry }

// CRLimit returns the consistency-ratio limit the evaluator enforces.
func (e *Evaluator) CRLimit() float64 { return e.crLimit }

// EvaluateWithMatrix derives weights from a pairwise comparison matrix, checks
// its consistency ratio, and scores the site. A CR above the configured limit
// flags the result as inconsistent but never blocks it.
func (e *Evaluator) EvaluateWithMatrix(values map[string]float64, m *PairwiseMatrix) (*Result, error) {
	weights, err := m.Weights(e.registry)
	if err != nil {
		return nil, err
	}

	cr := m.ConsistencyRatio(weights)
	consistent := cr <= e.crLimit
	if !consistent {
		e.logger.Warn("pairwise matrix exceeds consistency limit",
			"consistency_ratio", cr,
			"limit", e.crLimit,
		)
	}

	return e.evaluate(values, weights, cr, consistent)
}

// EvaluateWithWeights scores the site with user-adjusted weights, renormalized
// to sum to 1. No consistency check applies; the result reports consistent.
func (e *Evaluator) EvaluateWithWeights(values map[string]float64, raw map[string]float64) (*Result, error) {
	weights, err := ManualWeights(e.registry, raw)
	if err != nil {
		return nil, err
	}
	return e.evaluate(values, weights, 0, true)
}

func (e *Evaluator) evaluate(values map[string]float64, weights WeightVector, cr float64, consistent bool) (*Result, error) {
	names := make(map[string]bool, len(values))
	for name := range values {
		names[name] = true
	}
	if err := e.registry.checkCovers(names, "values"); err != nil {
		return nil, err
	}

	contributions := make([]Contribution, 0, e.registry.Len())
	var total float64
	for _, name := range e.registry.Names() {
		raw := values[name]
		normalized, err := e.registry.Normalize(name, raw)
		if err != nil {
			return nil, err
		}
		weighted := normalized * weights[name]
		total += weighted
		contributions = append(contributions, Contribution{
			Name:       name,
			Raw:        raw,
			Normalized: normalized,
			Weight:     weights[name],
			Weighted:   weighted,
		})
	}

	// Largest contributors first; ties keep registry order.
	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Weighted > contributions[j].Weighted
	})

	return &Result{
		Score:            total,
		Category:         e.thresholds.Classify(total),
		Consistent:       consistent,
		ConsistencyRatio: cr,
		Weights:          weights,
		Contributions:    contributions,
	}, nil
}
