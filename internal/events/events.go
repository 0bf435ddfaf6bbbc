package events

import "time"

type EvaluationCompletedEvent struct {
	EvaluationID  string   `json:"evaluation_id"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Score         float64  `json:"score"`
	Category      string   `json:"category"`
	Consistent    bool     `json:"consistent"`
	WeightsSource string   `json:"weights_source"`
}

type EvaluationInconsistentEvent struct {
	EvaluationID     string  `json:"evaluation_id"`
	ConsistencyRatio float64 `json:"consistency_ratio"`
	Limit            float64 `json:"limit"`
}

type StatsEvent struct {
	Total        int            `json:"total"`
	AvgScore     float64        `json:"avg_score"`
	Inconsistent int            `json:"inconsistent"`
	ByCategory   map[string]int `json:"by_category,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}
