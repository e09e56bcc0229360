package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutec/campus-backend/internal/domain"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

func newTestAccountService(repo *memoryAccountRepo) *AccountService {
	return NewAccountService(repo, "@tecsup.edu.pe", 4)
}

func TestRegisterCreatesStudent(t *testing.T) {
	repo := newMemoryAccountRepo()
	svc := newTestAccountService(repo)

	account, err := svc.Register(context.Background(), &domain.Account{
		FirstName: "Nuevo",
		LastName:  "Alumno",
		Email:     "nuevo@tecsup.edu.pe",
	}, "contrasena-segura")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleStudent, account.Role)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "contrasena-segura", account.PasswordHash)
	assert.Equal(t, 1, repo.creates)
}

func TestRegisterRejectsForeignDomain(t *testing.T) {
	svc := newTestAccountService(newMemoryAccountRepo())

	_, err := svc.Register(context.Background(), &domain.Account{
		FirstName: "Otro",
		LastName:  "Dominio",
		Email:     "otro@gmail.com",
	}, "contrasena-segura")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeForbiddenDomain, apperrors.ToDomainError(err).Code)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAccountService(newMemoryAccountRepo())

	tests := []struct {
		name     string
		account  domain.Account
		password string
	}{
		{"missing first name", domain.Account{LastName: "Alumno", Email: "a@tecsup.edu.pe"}, "contrasena-segura"},
		{"missing last name", domain.Account{FirstName: "Nuevo", Email: "a@tecsup.edu.pe"}, "contrasena-segura"},
		{"short password", domain.Account{FirstName: "Nuevo", LastName: "Alumno", Email: "a@tecsup.edu.pe"}, "corta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := tt.account
			_, err := svc.Register(context.Background(), &account, tt.password)
			require.Error(t, err)
			assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newMemoryAccountRepo(&domain.Account{
		Email:        "ocupado@tecsup.edu.pe",
		FirstName:    "Ya",
		LastName:     "Existe",
		PasswordHash: "x",
		Role:         domain.RoleStudent,
	})
	svc := newTestAccountService(repo)

	_, err := svc.Register(context.Background(), &domain.Account{
		FirstName: "Nuevo",
		LastName:  "Alumno",
		Email:     "ocupado@tecsup.edu.pe",
	}, "contrasena-segura")
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCompleteProfile(t *testing.T) {
	repo := newMemoryAccountRepo(&domain.Account{
		Email:        "alumno@tecsup.edu.pe",
		FirstName:    "Alumno",
		LastName:     "Prueba",
		PasswordHash: "x",
		Role:         domain.RoleStudent,
	})
	svc := newTestAccountService(repo)

	careerID, sectionID, departmentID := int64(2), int64(3), int64(1)
	cycle := 4
	account, err := svc.CompleteProfile(context.Background(), "alumno@tecsup.edu.pe", ProfileUpdate{
		CareerID:     &careerID,
		CycleNumber:  &cycle,
		DepartmentID: &departmentID,
		SectionID:    &sectionID,
		Phone:        "999888777",
	})
	require.NoError(t, err)

	assert.False(t, account.RequiresCompletion())
	assert.Equal(t, "999888777", account.Phone)
	assert.Equal(t, 1, repo.updates)
}

func TestCompleteProfileUnknownAccount(t *testing.T) {
	svc := newTestAccountService(newMemoryAccountRepo())

	_, err := svc.CompleteProfile(context.Background(), "fantasma@tecsup.edu.pe", ProfileUpdate{})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
