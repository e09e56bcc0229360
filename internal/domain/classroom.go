package domain

import "time"

// ClassroomStatus enumerates classroom lifecycle states.
type ClassroomStatus string

const (
	ClassroomActive   ClassroomStatus = "activa"
	ClassroomInactive ClassroomStatus = "inactiva"
	ClassroomFinished ClassroomStatus = "finalizada"
)

// Classroom is a virtual classroom owned by a professor.
type Classroom struct {
	ID          int64
	Name        string
	Title       string
	Description string
	AccessCode  string
	ProfessorID int64
	SectionID   *int64
	Status      ClassroomStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EnrollmentStatus enumerates roster membership states.
type EnrollmentStatus string

const (
	EnrollmentInvited  EnrollmentStatus = "invitado"
	EnrollmentActive   EnrollmentStatus = "activo"
	EnrollmentInactive EnrollmentStatus = "inactivo"
)

// Enrollment records a student's membership in a classroom roster. A student
// who leaves keeps the row with the inactive state, so rejoining reactivates
// it instead of inserting a duplicate.
type Enrollment struct {
	ID          int64
	ClassroomID int64
	StudentID   int64
	Status      EnrollmentStatus
	JoinedAt    time.Time
	LeftAt      *time.Time
}

// InvitationStatus enumerates invitation lifecycle states.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pendiente"
	InvitationAccepted InvitationStatus = "aceptada"
	InvitationDeclined InvitationStatus = "rechazada"
	InvitationExpired  InvitationStatus = "expirada"
)

// Invitation invites an email address into a classroom.
type Invitation struct {
	ID           int64
	ClassroomID  int64
	InvitedByID  int64
	InviteeEmail string
	Code         string
	Status       InvitationStatus
	Message      string
	InvitedAt    time.Time
	ExpiresAt    time.Time
	RespondedAt  *time.Time
}

// Expired reports whether the invitation passed its expiry without response.
func (i *Invitation) Expired(now time.Time) bool {
	return i.Status == InvitationPending && now.After(i.ExpiresAt)
}
