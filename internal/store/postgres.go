package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solgrid-labs/siterank/internal/ahp"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const evaluationColumns = `id, latitude, longitude,
	score, category, consistent, consistency_ratio, weights_source,
	contributions, requested_by, created_at`

func (s *PostgresStore) CreateEvaluation(ctx context.Context, e *Evaluation) error {
	contribJSON, err := json.Marshal(e.Contributions)
	if err != nil {
		return fmt.Errorf("marshal contributions: %w", err)
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO site_evaluations (latitude, longitude,
			score, category, consistent, consistency_ratio, weights_source,
			contributions, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		e.Latitude, e.Longitude,
		e.Score, e.Category, e.Consistent, e.ConsistencyRatio, string(e.WeightsSource),
		contribJSON, e.RequestedBy,
	).Scan(&e.ID, &e.CreatedAt)
}

func (s *PostgresStore) GetEvaluation(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+evaluationColumns+`
		FROM site_evaluations WHERE id = $1`, id)

	e, err := scanEvaluation(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *PostgresStore) ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]*Evaluation, error) {
	query, args := listQuery(filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []*Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}

// listQuery builds the filtered SELECT. Split out so clause assembly is
// testable without a database.
func listQuery(filter EvaluationFilter) (string, []interface{}) {
	query := `SELECT ` + evaluationColumns + ` FROM site_evaluations WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Category != "" {
		n++
		query += fmt.Sprintf(" AND category = $%d", n)
		args = append(args, filter.Category)
	}
	if filter.WeightsSource != "" {
		n++
		query += fmt.Sprintf(" AND weights_source = $%d", n)
		args = append(args, string(filter.WeightsSource))
	}
	if filter.MinScore != nil {
		n++
		query += fmt.Sprintf(" AND score >= $%d", n)
		args = append(args, *filter.MinScore)
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}
	return query, args
}

func scanEvaluation(row pgx.Row) (*Evaluation, error) {
	e := &Evaluation{}
	var contribJSON []byte
	var source string
	var requestedBy sql.NullString

	err := row.Scan(
		&e.ID, &e.Latitude, &e.Longitude,
		&e.Score, &e.Category, &e.Consistent, &e.ConsistencyRatio, &source,
		&contribJSON, &requestedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.WeightsSource = WeightsSource(source)
	e.CategoryLabel = ahp.Category(e.Category).Label()
	if requestedBy.Valid {
		e.RequestedBy = requestedBy.String
	}
	if contribJSON != nil {
		if err := json.Unmarshal(contribJSON, &e.Contributions); err != nil {
			return nil, fmt.Errorf("unmarshal contributions: %w", err)
		}
	}
	return e, nil
}

func (s *PostgresStore) GetStats(ctx context.Context) (*EvaluationStats, error) {
	stats := &EvaluationStats{ByCategory: make(map[string]int)}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(AVG(score), 0),
			COUNT(*) FILTER (WHERE NOT consistent)
		FROM site_evaluations`,
	).Scan(&stats.Total, &stats.AvgScore, &stats.Inconsistent)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT category, COUNT(*) FROM site_evaluations GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.ByCategory[category] = count
	}
	return stats, rows.Err()
}
