package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutec/campus-backend/internal/domain"
)

// InvitationRepository manages classroom invitation persistence.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	GetByCode(ctx context.Context, code string) (*domain.Invitation, error)
	ListByClassroom(ctx context.Context, classroomID int64) ([]domain.Invitation, error)
	ListPendingByEmail(ctx context.Context, email string) ([]domain.Invitation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.InvitationStatus, respondedAt time.Time) error
}

type invitationRepository struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository builds the repository.
func NewInvitationRepository(pool *pgxpool.Pool) InvitationRepository {
	return &invitationRepository{pool: pool}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	const query = `
        INSERT INTO invitations (classroom_id, invited_by_id, invitee_email, code,
            status, message, expires_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, invited_at`
	return r.pool.QueryRow(ctx, query,
		invitation.ClassroomID,
		invitation.InvitedByID,
		invitation.InviteeEmail,
		invitation.Code,
		invitation.Status,
		invitation.Message,
		invitation.ExpiresAt,
	).Scan(&invitation.ID, &invitation.InvitedAt)
}

func (r *invitationRepository) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	const query = `
        SELECT id, classroom_id, invited_by_id, invitee_email, code, status, message,
            invited_at, expires_at, responded_at
        FROM invitations WHERE code=$1`
	var inv domain.Invitation
	if err := r.pool.QueryRow(ctx, query, code).Scan(
		&inv.ID,
		&inv.ClassroomID,
		&inv.InvitedByID,
		&inv.InviteeEmail,
		&inv.Code,
		&inv.Status,
		&inv.Message,
		&inv.InvitedAt,
		&inv.ExpiresAt,
		&inv.RespondedAt,
	); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepository) ListByClassroom(ctx context.Context, classroomID int64) ([]domain.Invitation, error) {
	const query = `
        SELECT id, classroom_id, invited_by_id, invitee_email, code, status, message,
            invited_at, expires_at, responded_at
        FROM invitations WHERE classroom_id=$1 ORDER BY invited_at DESC`
	return r.list(ctx, query, classroomID)
}

func (r *invitationRepository) ListPendingByEmail(ctx context.Context, email string) ([]domain.Invitation, error) {
	const query = `
        SELECT id, classroom_id, invited_by_id, invitee_email, code, status, message,
            invited_at, expires_at, responded_at
        FROM invitations WHERE invitee_email=$1 AND status='pendiente' ORDER BY invited_at DESC`
	return r.list(ctx, query, email)
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, id int64, status domain.InvitationStatus, respondedAt time.Time) error {
	const query = `UPDATE invitations SET status=$1, responded_at=$2 WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, respondedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invitationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Invitation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		if err := rows.Scan(&inv.ID, &inv.ClassroomID, &inv.InvitedByID, &inv.InviteeEmail,
			&inv.Code, &inv.Status, &inv.Message, &inv.InvitedAt, &inv.ExpiresAt, &inv.RespondedAt); err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	return result, rows.Err()
}
