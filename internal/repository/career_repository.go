package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutec/campus-backend/internal/domain"
)

// CareerRepository manages career persistence.
type CareerRepository interface {
	Create(ctx context.Context, career *domain.Career) error
	Update(ctx context.Context, career *domain.Career) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Career, error)
	ListActive(ctx context.Context) ([]domain.Career, error)
	ListActiveByDepartment(ctx context.Context, departmentID int64) ([]domain.Career, error)
}

type careerRepository struct {
	pool *pgxpool.Pool
}

// NewCareerRepository builds the repository.
func NewCareerRepository(pool *pgxpool.Pool) CareerRepository {
	return &careerRepository{pool: pool}
}

func (r *careerRepository) Create(ctx context.Context, career *domain.Career) error {
	const query = `
        INSERT INTO careers (name, code, department_id, is_active)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		career.Name,
		career.Code,
		career.DepartmentID,
		career.IsActive,
	).Scan(&career.ID, &career.CreatedAt, &career.UpdatedAt)
}

func (r *careerRepository) Update(ctx context.Context, career *domain.Career) error {
	const query = `
        UPDATE careers SET name=$1, code=$2, department_id=$3, is_active=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		career.Name,
		career.Code,
		career.DepartmentID,
		career.IsActive,
		career.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *careerRepository) Delete(ctx context.Context, id int64) error {
	const query = `UPDATE careers SET is_active = FALSE, updated_at=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *careerRepository) GetByID(ctx context.Context, id int64) (*domain.Career, error) {
	const query = `
        SELECT id, name, code, department_id, is_active, created_at, updated_at
        FROM careers WHERE id=$1`
	var career domain.Career
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&career.ID,
		&career.Name,
		&career.Code,
		&career.DepartmentID,
		&career.IsActive,
		&career.CreatedAt,
		&career.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &career, nil
}

func (r *careerRepository) ListActive(ctx context.Context) ([]domain.Career, error) {
	const query = `
        SELECT id, name, code, department_id, is_active, created_at, updated_at
        FROM careers WHERE is_active = TRUE ORDER BY name`
	return r.list(ctx, query)
}

func (r *careerRepository) ListActiveByDepartment(ctx context.Context, departmentID int64) ([]domain.Career, error) {
	const query = `
        SELECT id, name, code, department_id, is_active, created_at, updated_at
        FROM careers WHERE is_active = TRUE AND department_id=$1 ORDER BY name`
	return r.list(ctx, query, departmentID)
}

func (r *careerRepository) list(ctx context.Context, query string, args ...any) ([]domain.Career, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Career
	for rows.Next() {
		var career domain.Career
		if err := rows.Scan(&career.ID, &career.Name, &career.Code, &career.DepartmentID,
			&career.IsActive, &career.CreatedAt, &career.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, career)
	}
	return result, rows.Err()
}
