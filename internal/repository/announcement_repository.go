package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutec/campus-backend/internal/domain"
)

// AnnouncementRepository manages announcement persistence.
type AnnouncementRepository interface {
	Create(ctx context.Context, ann *domain.Announcement) error
	GetByID(ctx context.Context, id int64) (*domain.Announcement, error)
	ListByClassroom(ctx context.Context, classroomID int64) ([]domain.Announcement, error)
	ListGeneral(ctx context.Context, limit int) ([]domain.Announcement, error)
	Deactivate(ctx context.Context, id int64) error
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository builds the repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) Create(ctx context.Context, ann *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (title, content, category, classroom_id, author_id,
            allow_comments, pinned, is_general, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, published_at`
	return r.pool.QueryRow(ctx, query,
		ann.Title,
		ann.Content,
		ann.Category,
		ann.ClassroomID,
		ann.AuthorID,
		ann.AllowComments,
		ann.Pinned,
		ann.IsGeneral,
		ann.IsActive,
	).Scan(&ann.ID, &ann.PublishedAt)
}

func (r *announcementRepository) GetByID(ctx context.Context, id int64) (*domain.Announcement, error) {
	const query = `
        SELECT id, title, content, category, classroom_id, author_id, allow_comments,
            pinned, is_general, is_active, published_at, edited_at
        FROM announcements WHERE id=$1`
	var ann domain.Announcement
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ann.ID,
		&ann.Title,
		&ann.Content,
		&ann.Category,
		&ann.ClassroomID,
		&ann.AuthorID,
		&ann.AllowComments,
		&ann.Pinned,
		&ann.IsGeneral,
		&ann.IsActive,
		&ann.PublishedAt,
		&ann.EditedAt,
	); err != nil {
		return nil, err
	}
	return &ann, nil
}

func (r *announcementRepository) ListByClassroom(ctx context.Context, classroomID int64) ([]domain.Announcement, error) {
	const query = `
        SELECT id, title, content, category, classroom_id, author_id, allow_comments,
            pinned, is_general, is_active, published_at, edited_at
        FROM announcements
        WHERE classroom_id=$1 AND is_active = TRUE
        ORDER BY pinned DESC, published_at DESC`
	return r.list(ctx, query, classroomID)
}

func (r *announcementRepository) ListGeneral(ctx context.Context, limit int) ([]domain.Announcement, error) {
	const query = `
        SELECT id, title, content, category, classroom_id, author_id, allow_comments,
            pinned, is_general, is_active, published_at, edited_at
        FROM announcements
        WHERE is_general = TRUE AND is_active = TRUE
        ORDER BY pinned DESC, published_at DESC
        LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *announcementRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `UPDATE announcements SET is_active = FALSE, edited_at=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *announcementRepository) list(ctx context.Context, query string, args ...any) ([]domain.Announcement, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		var ann domain.Announcement
		if err := rows.Scan(&ann.ID, &ann.Title, &ann.Content, &ann.Category, &ann.ClassroomID,
			&ann.AuthorID, &ann.AllowComments, &ann.Pinned, &ann.IsGeneral, &ann.IsActive,
			&ann.PublishedAt, &ann.EditedAt); err != nil {
			return nil, err
		}
		result = append(result, ann)
	}
	return result, rows.Err()
}
