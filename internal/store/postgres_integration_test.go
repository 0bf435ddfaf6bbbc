//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/solgrid-labs/siterank/internal/ahp"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE site_evaluations")
		s.Close()
	})

	return s
}

func float64Ptr(v float64) *float64 { return &v }

func TestCreateAndGetEvaluation(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	e := &Evaluation{
		Latitude:         float64Ptr(22.7196),
		Longitude:        float64Ptr(75.8577),
		Score:            0.71,
		Category:         string(ahp.ModeratelySuitable),
		Consistent:       true,
		ConsistencyRatio: 0.04,
		WeightsSource:    SourceMatrix,
		Contributions: []ahp.Contribution{
			{Name: "solar_radiation", Raw: 6.2, Normalized: 0.675, Weight: 0.4, Weighted: 0.27},
		},
		RequestedBy: "integration-test",
	}

	if err := s.CreateEvaluation(ctx, e); err != nil {
		t.Fatalf("CreateEvaluation failed: %v", err)
	}
	if e.ID == uuid.Nil {
		t.Fatal("expected non-nil evaluation ID after create")
	}

	got, err := s.GetEvaluation(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEvaluation failed: %v", err)
	}
	if got == nil {
		t.Fatal("evaluation not found after create")
	}
	if got.Score != e.Score || got.Category != e.Category {
		t.Errorf("round-trip mismatch: got score=%f category=%s", got.Score, got.Category)
	}
	if len(got.Contributions) != 1 || got.Contributions[0].Name != "solar_radiation" {
		t.Errorf("contributions did not round-trip: %+v", got.Contributions)
	}
	if got.CategoryLabel != "Moderately Suitable" {
		t.Errorf("category label = %q", got.CategoryLabel)
	}
}

func TestGetEvaluationNotFound(t *testing.T) {
	s := setupTestDB(t)
	got, err := s.GetEvaluation(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetEvaluation failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestListAndStats(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	for _, e := range []*Evaluation{
		{Score: 0.8, Category: string(ahp.HighlySuitable), Consistent: true, WeightsSource: SourceDefault},
		{Score: 0.3, Category: string(ahp.MarginallySuitable), Consistent: false, WeightsSource: SourceMatrix},
	} {
		if err := s.CreateEvaluation(ctx, e); err != nil {
			t.Fatalf("CreateEvaluation failed: %v", err)
		}
	}

	list, err := s.ListEvaluations(ctx, EvaluationFilter{Category: string(ahp.HighlySuitable)})
	if err != nil {
		t.Fatalf("ListEvaluations failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 highly suitable evaluation, got %d", len(list))
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Total != 2 || stats.Inconsistent != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
