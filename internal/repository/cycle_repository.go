package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutec/campus-backend/internal/domain"
)

// CycleRepository manages academic cycle persistence.
type CycleRepository interface {
	ListAll(ctx context.Context) ([]domain.Cycle, error)
	ListByCareer(ctx context.Context, careerID int64) ([]domain.Cycle, error)
}

type cycleRepository struct {
	pool *pgxpool.Pool
}

// NewCycleRepository builds the repository.
func NewCycleRepository(pool *pgxpool.Pool) CycleRepository {
	return &cycleRepository{pool: pool}
}

func (r *cycleRepository) ListAll(ctx context.Context) ([]domain.Cycle, error) {
	const query = `SELECT id, number, name, career_id FROM cycles ORDER BY number`
	return r.list(ctx, query)
}

func (r *cycleRepository) ListByCareer(ctx context.Context, careerID int64) ([]domain.Cycle, error) {
	const query = `SELECT id, number, name, career_id FROM cycles WHERE career_id=$1 ORDER BY number`
	return r.list(ctx, query, careerID)
}

func (r *cycleRepository) list(ctx context.Context, query string, args ...any) ([]domain.Cycle, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Cycle
	for rows.Next() {
		var cycle domain.Cycle
		if err := rows.Scan(&cycle.ID, &cycle.Number, &cycle.Name, &cycle.CareerID); err != nil {
			return nil, err
		}
		result = append(result, cycle)
	}
	return result, rows.Err()
}
