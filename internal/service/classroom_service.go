package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/repository"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

// ClassroomService manages virtual classrooms and their student rosters.
type ClassroomService struct {
	classrooms  repository.ClassroomRepository
	enrollments repository.EnrollmentRepository
}

// NewClassroomService builds the service.
func NewClassroomService(classrooms repository.ClassroomRepository, enrollments repository.EnrollmentRepository) *ClassroomService {
	return &ClassroomService{classrooms: classrooms, enrollments: enrollments}
}

// Create provisions a classroom owned by the professor, generating its
// access code.
func (s *ClassroomService) Create(ctx context.Context, classroom *domain.Classroom) error {
	if strings.TrimSpace(classroom.Name) == "" {
		return apperrors.NewValidationError("classroom name required", nil)
	}
	if classroom.ProfessorID == 0 {
		return apperrors.NewValidationError("classroom professor required", nil)
	}
	classroom.AccessCode = newAccessCode()
	if classroom.Status == "" {
		classroom.Status = domain.ClassroomActive
	}
	return s.classrooms.Create(ctx, classroom)
}

// Update modifies classroom fields owned by the caller.
func (s *ClassroomService) Update(ctx context.Context, classroom *domain.Classroom, callerID int64) error {
	existing, err := s.GetByID(ctx, classroom.ID)
	if err != nil {
		return err
	}
	if existing.ProfessorID != callerID {
		return apperrors.NewForbidden("only the owning professor may modify the classroom")
	}
	return s.classrooms.Update(ctx, classroom)
}

// GetByID fetches a classroom.
func (s *ClassroomService) GetByID(ctx context.Context, id int64) (*domain.Classroom, error) {
	classroom, err := s.classrooms.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("classroom", map[string]any{"id": id})
		}
		return nil, err
	}
	return classroom, nil
}

// GetByAccessCode fetches a classroom by its join code.
func (s *ClassroomService) GetByAccessCode(ctx context.Context, code string) (*domain.Classroom, error) {
	classroom, err := s.classrooms.GetByAccessCode(ctx, code)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("classroom", map[string]any{"code": code})
		}
		return nil, err
	}
	return classroom, nil
}

// ListForAccount lists the classrooms visible to an account. Professors see
// the classrooms they own; students see the classrooms they are enrolled in.
func (s *ClassroomService) ListForAccount(ctx context.Context, account *domain.Account) ([]domain.Classroom, error) {
	if account.Role == domain.RoleStudent {
		return s.classrooms.ListByStudent(ctx, account.ID)
	}
	return s.classrooms.ListByProfessor(ctx, account.ID)
}

// Enroll puts a student on the classroom roster. Already-active enrollments
// are a no-op, and a student who previously left is reactivated rather than
// duplicated.
func (s *ClassroomService) Enroll(ctx context.Context, classroomID, studentID int64) error {
	if _, err := s.GetByID(ctx, classroomID); err != nil {
		return err
	}

	existing, err := s.enrollments.GetByClassroomAndStudent(ctx, classroomID, studentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return s.enrollments.Create(ctx, &domain.Enrollment{
				ClassroomID: classroomID,
				StudentID:   studentID,
				Status:      domain.EnrollmentActive,
			})
		}
		return err
	}
	if existing.Status == domain.EnrollmentActive {
		return nil
	}
	return s.enrollments.SetStatus(ctx, existing.ID, domain.EnrollmentActive)
}

// JoinByAccessCode enrolls the student into the classroom behind a join
// code.
func (s *ClassroomService) JoinByAccessCode(ctx context.Context, code string, studentID int64) (*domain.Classroom, error) {
	classroom, err := s.GetByAccessCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := s.Enroll(ctx, classroom.ID, studentID); err != nil {
		return nil, err
	}
	return classroom, nil
}

// RemoveParticipant takes an active student off the roster. Only the owning
// professor may do it; the enrollment is kept as inactive so the history
// survives.
func (s *ClassroomService) RemoveParticipant(ctx context.Context, classroomID, studentID, callerID int64) error {
	classroom, err := s.GetByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if classroom.ProfessorID != callerID {
		return apperrors.NewForbidden("only the owning professor may remove participants")
	}

	enrollment, err := s.enrollments.GetByClassroomAndStudent(ctx, classroomID, studentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("enrollment", map[string]any{"classroomId": classroomID, "studentId": studentID})
		}
		return err
	}
	if enrollment.Status != domain.EnrollmentActive {
		return apperrors.NewNotFound("enrollment", map[string]any{"classroomId": classroomID, "studentId": studentID})
	}
	return s.enrollments.SetStatus(ctx, enrollment.ID, domain.EnrollmentInactive)
}

// Roster lists the classroom's enrollments for its owning professor.
func (s *ClassroomService) Roster(ctx context.Context, classroomID, callerID int64) ([]domain.Enrollment, error) {
	classroom, err := s.GetByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if classroom.ProfessorID != callerID {
		return nil, apperrors.NewForbidden("only the owning professor may view the roster")
	}
	return s.enrollments.ListByClassroom(ctx, classroomID)
}

// newAccessCode derives a short join code from a fresh UUID.
func newAccessCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
