package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutec/campus-backend/internal/domain"
)

// EnrollmentRepository manages classroom roster persistence.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	GetByClassroomAndStudent(ctx context.Context, classroomID, studentID int64) (*domain.Enrollment, error)
	ListByClassroom(ctx context.Context, classroomID int64) ([]domain.Enrollment, error)
	SetStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) error
}

type enrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository builds the repository.
func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{pool: pool}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	const query = `
        INSERT INTO enrollments (classroom_id, student_id, status)
        VALUES ($1,$2,$3)
        RETURNING id, joined_at`
	return r.pool.QueryRow(ctx, query,
		enrollment.ClassroomID,
		enrollment.StudentID,
		enrollment.Status,
	).Scan(&enrollment.ID, &enrollment.JoinedAt)
}

func (r *enrollmentRepository) GetByClassroomAndStudent(ctx context.Context, classroomID, studentID int64) (*domain.Enrollment, error) {
	const query = `
        SELECT id, classroom_id, student_id, status, joined_at, left_at
        FROM enrollments WHERE classroom_id=$1 AND student_id=$2`
	var enrollment domain.Enrollment
	if err := r.pool.QueryRow(ctx, query, classroomID, studentID).Scan(
		&enrollment.ID,
		&enrollment.ClassroomID,
		&enrollment.StudentID,
		&enrollment.Status,
		&enrollment.JoinedAt,
		&enrollment.LeftAt,
	); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) ListByClassroom(ctx context.Context, classroomID int64) ([]domain.Enrollment, error) {
	const query = `
        SELECT id, classroom_id, student_id, status, joined_at, left_at
        FROM enrollments WHERE classroom_id=$1 ORDER BY joined_at`
	rows, err := r.pool.Query(ctx, query, classroomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Enrollment
	for rows.Next() {
		var enrollment domain.Enrollment
		if err := rows.Scan(&enrollment.ID, &enrollment.ClassroomID, &enrollment.StudentID,
			&enrollment.Status, &enrollment.JoinedAt, &enrollment.LeftAt); err != nil {
			return nil, err
		}
		result = append(result, enrollment)
	}
	return result, rows.Err()
}

// SetStatus moves an enrollment between roster states. Activation refreshes
// the join time and clears the leave time; deactivation stamps the leave
// time.
func (r *enrollmentRepository) SetStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) error {
	const query = `
        UPDATE enrollments SET status=$1,
            joined_at = CASE WHEN $1 = 'activo' THEN NOW() ELSE joined_at END,
            left_at   = CASE WHEN $1 = 'inactivo' THEN NOW() ELSE NULL END
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
