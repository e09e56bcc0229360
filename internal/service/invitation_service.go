package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/events"
	"github.com/edutec/campus-backend/internal/repository"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

const invitationTTL = 7 * 24 * time.Hour

// InvitationService manages classroom invitations. Accepting one is what
// puts a student on the classroom roster.
type InvitationService struct {
	invitations repository.InvitationRepository
	classrooms  *ClassroomService
	accounts    repository.AccountRepository
	dispatcher  events.Dispatcher
}

// NewInvitationService builds the service.
func NewInvitationService(invitations repository.InvitationRepository, classrooms *ClassroomService, accounts repository.AccountRepository, dispatcher events.Dispatcher) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		classrooms:  classrooms,
		accounts:    accounts,
		dispatcher:  dispatcher,
	}
}

// Create invites an email into a classroom. Only the owning professor may
// invite.
func (s *InvitationService) Create(ctx context.Context, classroomID, invitedByID int64, inviteeEmail, message string) (*domain.Invitation, error) {
	if strings.TrimSpace(inviteeEmail) == "" {
		return nil, apperrors.NewValidationError("invitee email required", nil)
	}

	classroom, err := s.classrooms.GetByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if classroom.ProfessorID != invitedByID {
		return nil, apperrors.NewForbidden("only the owning professor may invite")
	}

	invitation := &domain.Invitation{
		ClassroomID:  classroomID,
		InvitedByID:  invitedByID,
		InviteeEmail: inviteeEmail,
		Code:         uuid.NewString(),
		Status:       domain.InvitationPending,
		Message:      message,
		ExpiresAt:    time.Now().Add(invitationTTL),
	}
	if err := s.invitations.Create(ctx, invitation); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventInvitationCreated, inviteeEmail, events.InvitationCreatedPayload{
		ClassroomID:  classroomID,
		InviteeEmail: inviteeEmail,
		Code:         invitation.Code,
	})
	return invitation, nil
}

// Respond accepts or declines a pending invitation. The invitee is matched
// by email; expired invitations flip to the expired state instead.
func (s *InvitationService) Respond(ctx context.Context, code, responderEmail string, accept bool) (*domain.Invitation, error) {
	invitation, err := s.invitations.GetByCode(ctx, code)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("invitation", map[string]any{"code": code})
		}
		return nil, err
	}

	if !strings.EqualFold(invitation.InviteeEmail, responderEmail) {
		return nil, apperrors.NewForbidden("invitation belongs to another account")
	}
	if invitation.Status != domain.InvitationPending {
		return nil, apperrors.NewConflict("invitation already responded", nil)
	}

	now := time.Now()
	status := domain.InvitationDeclined
	if invitation.Expired(now) {
		status = domain.InvitationExpired
	} else if accept {
		status = domain.InvitationAccepted
	}

	// Accepting is what joins the classroom: the roster insert happens
	// before the invitation flips, so a failed enrollment leaves it
	// pending and retryable.
	if status == domain.InvitationAccepted {
		account, err := s.accounts.GetByEmail(ctx, responderEmail)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("account", map[string]any{"email": responderEmail})
			}
			return nil, err
		}
		if account.Role != domain.RoleStudent {
			return nil, apperrors.NewForbidden("only students may accept classroom invitations")
		}
		if err := s.classrooms.Enroll(ctx, invitation.ClassroomID, account.ID); err != nil {
			return nil, err
		}
	}

	if err := s.invitations.UpdateStatus(ctx, invitation.ID, status, now); err != nil {
		return nil, err
	}
	invitation.Status = status
	invitation.RespondedAt = &now

	s.publish(ctx, events.EventInvitationResponded, responderEmail, events.InvitationRespondedPayload{
		ClassroomID: invitation.ClassroomID,
		Status:      string(status),
	})
	return invitation, nil
}

// ListByClassroom lists invitations for a classroom.
func (s *InvitationService) ListByClassroom(ctx context.Context, classroomID int64) ([]domain.Invitation, error) {
	return s.invitations.ListByClassroom(ctx, classroomID)
}

// ListPendingForEmail lists open invitations addressed to an email.
func (s *InvitationService) ListPendingForEmail(ctx context.Context, email string) ([]domain.Invitation, error) {
	return s.invitations.ListPendingByEmail(ctx, email)
}

func (s *InvitationService) publish(ctx context.Context, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
