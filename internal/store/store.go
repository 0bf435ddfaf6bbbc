package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/solgrid-labs/siterank/internal/ahp"
)

// WeightsSource records how the weight vector of an evaluation was obtained.
type WeightsSource string

const (
	SourceMatrix  WeightsSource = "matrix"
	SourceManual  WeightsSource = "manual"
	SourceDefault WeightsSource = "default"
)

// Evaluation is one persisted suitability result.
type Evaluation struct {
	ID uuid.UUID `json:"id"`

	// Site location, when the evaluation came from a coordinate rather than
	// explicit values.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Score            float64       `json:"score"`
	Category         string        `json:"category"`
	CategoryLabel    string        `json:"category_label"`
	Consistent       bool          `json:"consistent"`
	ConsistencyRatio float64       `json:"consistency_ratio"`
	WeightsSource    WeightsSource `json:"weights_source"`

	Contributions []ahp.Contribution `json:"contributions"`

	RequestedBy string    `json:"requested_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EvaluationFilter narrows ListEvaluations.
type EvaluationFilter struct {
	Category      string
	WeightsSource WeightsSource
	MinScore      *float64
	Limit         int
	Offset        int
}

// EvaluationStats are store-wide aggregates surfaced on the admin endpoint and
// the stats event.
type EvaluationStats struct {
	Total        int            `json:"total"`
	AvgScore     float64        `json:"avg_score"`
	Inconsistent int            `json:"inconsistent"`
	ByCategory   map[string]int `json:"by_category"`
}

type Store interface {
	CreateEvaluation(ctx context.Context, e *Evaluation) error
	GetEvaluation(ctx context.Context, id uuid.UUID) (*Evaluation, error)
	ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]*Evaluation, error)
	GetStats(ctx context.Context) (*EvaluationStats, error)
	Close() error
}
