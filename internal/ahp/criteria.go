package ahp

import (
	"fmt"
	"sort"
)

// Direction states whether larger or smaller raw values make a site more
// suitable for a criterion.
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// Criterion is one evaluation axis with its valid raw range and normalization
// direction. Raw values outside [Min, Max] are clamped before normalization.
type Criterion struct {
	Name      string    `json:"name" yaml:"name"`
	Unit      string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	Min       float64   `json:"min" yaml:"min"`
	Max       float64   `json:"max" yaml:"max"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Registry holds the fixed criteria set for an evaluation run. It is immutable
// after construction, so it is safe to share across concurrent evaluations.
type Registry struct {
	criteria []Criterion
	index    map[string]int
}

// NewRegistry validates and indexes the given criteria. Degenerate ranges
// (max <= min), unknown directions, and duplicate names are rejected here so
// Normalize never has to.
func NewRegistry(criteria []Criterion) (*Registry, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one criterion", ErrMissingCriterion)
	}
	index := make(map[string]int, len(criteria))
	for i, c := range criteria {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: criterion %d has empty name", ErrInvalidRange, i)
		}
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate criterion %q", ErrInvalidRange, c.Name)
		}
		if c.Max <= c.Min {
			return nil, fmt.Errorf("%w: criterion %q has range [%g, %g]", ErrInvalidRange, c.Name, c.Min, c.Max)
		}
		if c.Direction != HigherIsBetter && c.Direction != LowerIsBetter {
			return nil, fmt.Errorf("%w: criterion %q has direction %q", ErrInvalidRange, c.Name, c.Direction)
		}
		index[c.Name] = i
	}
	return &Registry{criteria: criteria, index: index}, nil
}

// Criteria returns the registered criteria in registration order.
func (r *Registry) Criteria() []Criterion {
	out := make([]Criterion, len(r.criteria))
	copy(out, r.criteria)
	return out
}

// Names returns the criterion names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.criteria))
	for i, c := range r.criteria {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of registered criteria.
func (r *Registry) Len() int { return len(r.criteria) }

// Has reports whether a criterion is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Normalize rescales a raw value into [0, 1] for the named criterion,
// clamping it to the criterion's range first.
func (r *Registry) Normalize(name string, raw float64) (float64, error) {
	i, ok := r.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q not in registry", ErrMissingCriterion, name)
	}
	c := r.criteria[i]
	v := clamp(raw, c.Min, c.Max)
	if c.Direction == LowerIsBetter {
		return (c.Max - v) / (c.Max - c.Min), nil
	}
	return (v - c.Min) / (c.Max - c.Min), nil
}

// checkCovers verifies that the given name set matches the registry exactly.
// what names the offending side in the error ("values", "weights").
func (r *Registry) checkCovers(names map[string]bool, what string) error {
	for name := range r.index {
		if !names[name] {
			return fmt.Errorf("%w: %s omit %q", ErrMissingCriterion, what, name)
		}
	}
	if len(names) > len(r.index) {
		extra := make([]string, 0, 1)
		for name := range names {
			if !r.Has(name) {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		return fmt.Errorf("%w: %s include unknown %q", ErrMissingCriterion, what, extra[0])
	}
	return nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
