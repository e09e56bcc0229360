package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccountRole(t *testing.T) {
	tests := []struct {
		input string
		want  AccountRole
	}{
		{"estudiante", RoleStudent},
		{"profesor", RoleProfessor},
		{"PROFESOR", RoleProfessor},
		{"admin", RoleAdmin},
		{" admin ", RoleAdmin},
		// Unknown or blank input falls back to the least privileged role.
		{"", RoleStudent},
		{"alumno", RoleStudent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAccountRole(tt.input), "input %q", tt.input)
	}
}

func TestRequiresCompletion(t *testing.T) {
	careerID, sectionID, departmentID := int64(2), int64(3), int64(1)
	cycle := 4

	complete := Account{
		CareerID:     &careerID,
		SectionID:    &sectionID,
		DepartmentID: &departmentID,
		CycleNumber:  &cycle,
	}
	assert.False(t, complete.RequiresCompletion())
	assert.True(t, complete.ProfileComplete())

	// Dropping any one affiliation field flips the flag.
	missingCareer := complete
	missingCareer.CareerID = nil
	assert.True(t, missingCareer.RequiresCompletion())

	missingCycle := complete
	missingCycle.CycleNumber = nil
	assert.True(t, missingCycle.RequiresCompletion())

	missingSection := complete
	missingSection.SectionID = nil
	assert.True(t, missingSection.RequiresCompletion())

	missingDepartment := complete
	missingDepartment.DepartmentID = nil
	assert.True(t, missingDepartment.RequiresCompletion())
}

func TestFullName(t *testing.T) {
	account := Account{FirstName: "Ana", LastName: "Quispe"}
	assert.Equal(t, "Ana Quispe", account.FullName())
}
