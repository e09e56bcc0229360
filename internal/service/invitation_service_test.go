package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutec/campus-backend/internal/domain"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

type memoryInvitationRepo struct {
	byCode map[string]*domain.Invitation
	nextID int64
}

func newMemoryInvitationRepo() *memoryInvitationRepo {
	return &memoryInvitationRepo{byCode: make(map[string]*domain.Invitation), nextID: 1}
}

func (r *memoryInvitationRepo) Create(_ context.Context, invitation *domain.Invitation) error {
	invitation.ID = r.nextID
	r.nextID++
	invitation.InvitedAt = time.Now()
	copied := *invitation
	r.byCode[invitation.Code] = &copied
	return nil
}

func (r *memoryInvitationRepo) GetByCode(_ context.Context, code string) (*domain.Invitation, error) {
	invitation, ok := r.byCode[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *invitation
	return &copied, nil
}

func (r *memoryInvitationRepo) ListByClassroom(_ context.Context, classroomID int64) ([]domain.Invitation, error) {
	var out []domain.Invitation
	for _, invitation := range r.byCode {
		if invitation.ClassroomID == classroomID {
			out = append(out, *invitation)
		}
	}
	return out, nil
}

func (r *memoryInvitationRepo) ListPendingByEmail(_ context.Context, email string) ([]domain.Invitation, error) {
	var out []domain.Invitation
	for _, invitation := range r.byCode {
		if invitation.InviteeEmail == email && invitation.Status == domain.InvitationPending {
			out = append(out, *invitation)
		}
	}
	return out, nil
}

func (r *memoryInvitationRepo) UpdateStatus(_ context.Context, id int64, status domain.InvitationStatus, respondedAt time.Time) error {
	for _, invitation := range r.byCode {
		if invitation.ID == id {
			invitation.Status = status
			invitation.RespondedAt = &respondedAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memoryClassroomRepo struct {
	byID        map[int64]*domain.Classroom
	enrollments *memoryEnrollmentRepo
}

func newMemoryClassroomRepo(classrooms ...*domain.Classroom) *memoryClassroomRepo {
	repo := &memoryClassroomRepo{
		byID:        make(map[int64]*domain.Classroom),
		enrollments: newMemoryEnrollmentRepo(),
	}
	for _, classroom := range classrooms {
		repo.byID[classroom.ID] = classroom
	}
	return repo
}

func (r *memoryClassroomRepo) Create(_ context.Context, classroom *domain.Classroom) error {
	r.byID[classroom.ID] = classroom
	return nil
}

func (r *memoryClassroomRepo) Update(_ context.Context, classroom *domain.Classroom) error {
	if _, ok := r.byID[classroom.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[classroom.ID] = classroom
	return nil
}

func (r *memoryClassroomRepo) GetByID(_ context.Context, id int64) (*domain.Classroom, error) {
	classroom, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *classroom
	return &copied, nil
}

func (r *memoryClassroomRepo) GetByAccessCode(_ context.Context, code string) (*domain.Classroom, error) {
	for _, classroom := range r.byID {
		if classroom.AccessCode == code {
			copied := *classroom
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryClassroomRepo) ListByProfessor(_ context.Context, professorID int64) ([]domain.Classroom, error) {
	var out []domain.Classroom
	for _, classroom := range r.byID {
		if classroom.ProfessorID == professorID {
			out = append(out, *classroom)
		}
	}
	return out, nil
}

func (r *memoryClassroomRepo) ListByStudent(_ context.Context, studentID int64) ([]domain.Classroom, error) {
	var out []domain.Classroom
	for _, enrollment := range r.enrollments.byID {
		if enrollment.StudentID == studentID && enrollment.Status == domain.EnrollmentActive {
			if classroom, ok := r.byID[enrollment.ClassroomID]; ok {
				out = append(out, *classroom)
			}
		}
	}
	return out, nil
}

type invitationFixture struct {
	svc         *InvitationService
	invitations *memoryInvitationRepo
	accounts    *memoryAccountRepo
	enrollments *memoryEnrollmentRepo
}

// The seeded student matches the invitee email used across these tests.
func newInvitationFixture(classrooms ...*domain.Classroom) *invitationFixture {
	invitations := newMemoryInvitationRepo()
	accounts := newMemoryAccountRepo(&domain.Account{ID: 20, Email: "alumno@tecsup.edu.pe", Role: domain.RoleStudent})
	classroomRepo := newMemoryClassroomRepo(classrooms...)
	classroomSvc := NewClassroomService(classroomRepo, classroomRepo.enrollments)
	return &invitationFixture{
		svc:         NewInvitationService(invitations, classroomSvc, accounts, nil),
		invitations: invitations,
		accounts:    accounts,
		enrollments: classroomRepo.enrollments,
	}
}

func TestInvitationCreate(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})

	invitation, err := f.svc.Create(context.Background(), 10, 5, "alumno@tecsup.edu.pe", "bienvenido")
	require.NoError(t, err)

	assert.NotEmpty(t, invitation.Code)
	assert.Equal(t, domain.InvitationPending, invitation.Status)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), invitation.ExpiresAt, time.Minute)
}

func TestInvitationCreateOnlyOwner(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})

	_, err := f.svc.Create(context.Background(), 10, 99, "alumno@tecsup.edu.pe", "")
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestInvitationCreateUnknownClassroom(t *testing.T) {
	f := newInvitationFixture()

	_, err := f.svc.Create(context.Background(), 404, 5, "alumno@tecsup.edu.pe", "")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestInvitationRespondAcceptEnrolls(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})
	created, err := f.svc.Create(context.Background(), 10, 5, "alumno@tecsup.edu.pe", "")
	require.NoError(t, err)

	responded, err := f.svc.Respond(context.Background(), created.Code, "alumno@tecsup.edu.pe", true)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, responded.Status)
	require.NotNil(t, responded.RespondedAt)

	roster, err := f.enrollments.ListByClassroom(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, int64(20), roster[0].StudentID)
	assert.Equal(t, domain.EnrollmentActive, roster[0].Status)
}

func TestInvitationRespondInviteeMatchIgnoresCase(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})
	require.NoError(t, f.accounts.Create(context.Background(), &domain.Account{Email: "ALUMNO@tecsup.edu.pe", Role: domain.RoleStudent}))
	created, err := f.svc.Create(context.Background(), 10, 5, "alumno@tecsup.edu.pe", "")
	require.NoError(t, err)

	responded, err := f.svc.Respond(context.Background(), created.Code, "ALUMNO@tecsup.edu.pe", true)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, responded.Status)
}

func TestInvitationRespondAcceptStudentsOnly(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})
	require.NoError(t, f.accounts.Create(context.Background(), &domain.Account{Email: "docente@tecsup.edu.pe", Role: domain.RoleProfessor}))
	created, err := f.svc.Create(context.Background(), 10, 5, "docente@tecsup.edu.pe", "")
	require.NoError(t, err)

	_, err = f.svc.Respond(context.Background(), created.Code, "docente@tecsup.edu.pe", true)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	// A refused enrollment leaves the invitation pending and the roster
	// untouched.
	stored, err := f.invitations.GetByCode(context.Background(), created.Code)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationPending, stored.Status)
}

func TestInvitationRespondDeclineDoesNotEnroll(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})
	created, err := f.svc.Create(context.Background(), 10, 5, "alumno@tecsup.edu.pe", "")
	require.NoError(t, err)

	responded, err := f.svc.Respond(context.Background(), created.Code, "alumno@tecsup.edu.pe", false)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationDeclined, responded.Status)

	roster, err := f.enrollments.ListByClassroom(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestInvitationRespondAcceptAlreadyEnrolled(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})
	created, err := f.svc.Create(context.Background(), 10, 5, "alumno@tecsup.edu.pe", "")
	require.NoError(t, err)

	require.NoError(t, f.enrollments.Create(context.Background(), &domain.Enrollment{
		ClassroomID: 10, StudentID: 20, Status: domain.EnrollmentActive,
	}))

	responded, err := f.svc.Respond(context.Background(), created.Code, "alumno@tecsup.edu.pe", true)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, responded.Status)

	roster, err := f.enrollments.ListByClassroom(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, roster, 1)
}

func TestInvitationRespondWrongAccount(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})
	created, err := f.svc.Create(context.Background(), 10, 5, "alumno@tecsup.edu.pe", "")
	require.NoError(t, err)

	_, err = f.svc.Respond(context.Background(), created.Code, "otro@tecsup.edu.pe", true)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestInvitationRespondTwice(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})
	created, err := f.svc.Create(context.Background(), 10, 5, "alumno@tecsup.edu.pe", "")
	require.NoError(t, err)

	_, err = f.svc.Respond(context.Background(), created.Code, "alumno@tecsup.edu.pe", true)
	require.NoError(t, err)
	_, err = f.svc.Respond(context.Background(), created.Code, "alumno@tecsup.edu.pe", true)
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestInvitationRespondExpired(t *testing.T) {
	f := newInvitationFixture(&domain.Classroom{ID: 10, ProfessorID: 5})
	created, err := f.svc.Create(context.Background(), 10, 5, "alumno@tecsup.edu.pe", "")
	require.NoError(t, err)

	f.invitations.byCode[created.Code].ExpiresAt = time.Now().Add(-time.Hour)

	responded, err := f.svc.Respond(context.Background(), created.Code, "alumno@tecsup.edu.pe", true)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationExpired, responded.Status)

	roster, err := f.enrollments.ListByClassroom(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, roster)
}
