package domain

import (
	"strings"
	"time"
)

// AccountRole classifies platform users.
type AccountRole string

const (
	RoleStudent   AccountRole = "estudiante"
	RoleProfessor AccountRole = "profesor"
	RoleAdmin     AccountRole = "admin"
)

// ParseAccountRole maps arbitrary input to a known role, defaulting to student.
func ParseAccountRole(value string) AccountRole {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(RoleProfessor):
		return RoleProfessor
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// Account is the local user record, keyed by institutional email.
// Career, cycle, department and section stay unset after a first
// identity-provider login until the user completes their profile.
type Account struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         AccountRole
	CycleNumber  *int
	SectionID    *int64
	CareerID     *int64
	DepartmentID *int64
	AvatarURL    string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequiresCompletion reports whether the academic-affiliation fields still
// need to be filled in before the account can use the rest of the platform.
func (a *Account) RequiresCompletion() bool {
	return a.CareerID == nil || a.CycleNumber == nil || a.DepartmentID == nil || a.SectionID == nil
}

// ProfileComplete reports whether all mandatory contact and affiliation
// fields are populated.
func (a *Account) ProfileComplete() bool {
	return strings.TrimSpace(a.FirstName) != "" &&
		strings.TrimSpace(a.LastName) != "" &&
		strings.TrimSpace(a.Email) != "" &&
		a.CareerID != nil &&
		a.CycleNumber != nil &&
		a.DepartmentID != nil
}

// FullName joins first and last name.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
