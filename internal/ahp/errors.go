package ahp

import "errors"

var (
	// ErrInvalidRange is returned when a criterion is registered with a
	// degenerate value range (max <= min).
	ErrInvalidRange = errors.New("invalid criterion range")

	// ErrInvalidWeight is returned when manual weights contain a negative
	// value or sum to zero.
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrInvalidMatrix is returned when a pairwise comparison matrix violates
	// its structural invariants (shape, diagonal, reciprocity, scale bounds).
	ErrInvalidMatrix = errors.New("invalid pairwise matrix")

	// ErrMissingCriterion is returned when the criteria sets used by values,
	// weights, and the registry do not match exactly.
	ErrMissingCriterion = errors.New("missing criterion")
)
