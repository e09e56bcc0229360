package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutec/campus-backend/internal/domain"
)

// SectionRepository manages section persistence.
type SectionRepository interface {
	ListByCareer(ctx context.Context, careerID int64) ([]domain.Section, error)
	ListByCareerAndCycle(ctx context.Context, careerID int64, cycle int) ([]domain.Section, error)
}

type sectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository builds the repository.
func NewSectionRepository(pool *pgxpool.Pool) SectionRepository {
	return &sectionRepository{pool: pool}
}

func (r *sectionRepository) ListByCareer(ctx context.Context, careerID int64) ([]domain.Section, error) {
	const query = `
        SELECT id, name, code, cycle, career_id
        FROM sections WHERE career_id=$1 ORDER BY cycle, name`
	return r.list(ctx, query, careerID)
}

func (r *sectionRepository) ListByCareerAndCycle(ctx context.Context, careerID int64, cycle int) ([]domain.Section, error) {
	const query = `
        SELECT id, name, code, cycle, career_id
        FROM sections WHERE career_id=$1 AND cycle=$2 ORDER BY name`
	return r.list(ctx, query, careerID, cycle)
}

func (r *sectionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Section, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Section
	for rows.Next() {
		var section domain.Section
		if err := rows.Scan(&section.ID, &section.Name, &section.Code, &section.Cycle, &section.CareerID); err != nil {
			return nil, err
		}
		result = append(result, section)
	}
	return result, rows.Err()
}
