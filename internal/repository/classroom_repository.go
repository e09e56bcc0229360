package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutec/campus-backend/internal/domain"
)

// ClassroomRepository manages virtual classroom persistence.
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *domain.Classroom) error
	Update(ctx context.Context, classroom *domain.Classroom) error
	GetByID(ctx context.Context, id int64) (*domain.Classroom, error)
	GetByAccessCode(ctx context.Context, code string) (*domain.Classroom, error)
	ListByProfessor(ctx context.Context, professorID int64) ([]domain.Classroom, error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.Classroom, error)
}

type classroomRepository struct {
	pool *pgxpool.Pool
}

// NewClassroomRepository builds the repository.
func NewClassroomRepository(pool *pgxpool.Pool) ClassroomRepository {
	return &classroomRepository{pool: pool}
}

func (r *classroomRepository) Create(ctx context.Context, classroom *domain.Classroom) error {
	const query = `
        INSERT INTO classrooms (name, title, description, access_code, professor_id,
            section_id, status, start_date, end_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		classroom.Name,
		classroom.Title,
		classroom.Description,
		classroom.AccessCode,
		classroom.ProfessorID,
		classroom.SectionID,
		classroom.Status,
		classroom.StartDate,
		classroom.EndDate,
	).Scan(&classroom.ID, &classroom.CreatedAt, &classroom.UpdatedAt)
}

func (r *classroomRepository) Update(ctx context.Context, classroom *domain.Classroom) error {
	const query = `
        UPDATE classrooms SET name=$1, title=$2, description=$3, status=$4,
            start_date=$5, end_date=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		classroom.Name,
		classroom.Title,
		classroom.Description,
		classroom.Status,
		classroom.StartDate,
		classroom.EndDate,
		classroom.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *classroomRepository) GetByID(ctx context.Context, id int64) (*domain.Classroom, error) {
	const query = `
        SELECT id, name, title, description, access_code, professor_id, section_id,
            status, start_date, end_date, created_at, updated_at
        FROM classrooms WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *classroomRepository) GetByAccessCode(ctx context.Context, code string) (*domain.Classroom, error) {
	const query = `
        SELECT id, name, title, description, access_code, professor_id, section_id,
            status, start_date, end_date, created_at, updated_at
        FROM classrooms WHERE access_code=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, code))
}

func (r *classroomRepository) ListByProfessor(ctx context.Context, professorID int64) ([]domain.Classroom, error) {
	const query = `
        SELECT id, name, title, description, access_code, professor_id, section_id,
            status, start_date, end_date, created_at, updated_at
        FROM classrooms WHERE professor_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, professorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Classroom
	for rows.Next() {
		var classroom domain.Classroom
		if err := rows.Scan(&classroom.ID, &classroom.Name, &classroom.Title, &classroom.Description,
			&classroom.AccessCode, &classroom.ProfessorID, &classroom.SectionID, &classroom.Status,
			&classroom.StartDate, &classroom.EndDate, &classroom.CreatedAt, &classroom.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, classroom)
	}
	return result, rows.Err()
}

func (r *classroomRepository) ListByStudent(ctx context.Context, studentID int64) ([]domain.Classroom, error) {
	const query = `
        SELECT c.id, c.name, c.title, c.description, c.access_code, c.professor_id,
            c.section_id, c.status, c.start_date, c.end_date, c.created_at, c.updated_at
        FROM classrooms c
        JOIN enrollments e ON e.classroom_id = c.id
        WHERE e.student_id=$1 AND e.status='activo'
        ORDER BY c.created_at DESC`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Classroom
	for rows.Next() {
		var classroom domain.Classroom
		if err := rows.Scan(&classroom.ID, &classroom.Name, &classroom.Title, &classroom.Description,
			&classroom.AccessCode, &classroom.ProfessorID, &classroom.SectionID, &classroom.Status,
			&classroom.StartDate, &classroom.EndDate, &classroom.CreatedAt, &classroom.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, classroom)
	}
	return result, rows.Err()
}

func (r *classroomRepository) scanOne(row pgx.Row) (*domain.Classroom, error) {
	var classroom domain.Classroom
	if err := row.Scan(
		&classroom.ID,
		&classroom.Name,
		&classroom.Title,
		&classroom.Description,
		&classroom.AccessCode,
		&classroom.ProfessorID,
		&classroom.SectionID,
		&classroom.Status,
		&classroom.StartDate,
		&classroom.EndDate,
		&classroom.CreatedAt,
		&classroom.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &classroom, nil
}
