package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/domain"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

func newTestSessionService(t *testing.T, repo *memoryAccountRepo) (*SessionService, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager("session-test-secret", 60)
	require.NoError(t, err)
	store := auth.NewRevocationStore(tm, zap.NewNop(), time.Hour, 1000)
	return NewSessionService(repo, tm, store, zap.NewNop()), tm
}

func seedAccount(t *testing.T, password string, complete bool) *domain.Account {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)

	account := &domain.Account{
		Email:        "alumno@tecsup.edu.pe",
		FirstName:    "Alumno",
		LastName:     "Prueba",
		PasswordHash: hash,
		Role:         domain.RoleStudent,
	}
	if complete {
		careerID, sectionID, departmentID := int64(2), int64(3), int64(1)
		cycle := 4
		account.CareerID = &careerID
		account.SectionID = &sectionID
		account.DepartmentID = &departmentID
		account.CycleNumber = &cycle
	}
	return account
}

func TestLoginSucceeds(t *testing.T) {
	account := seedAccount(t, "secreta123", true)
	svc, tm := newTestSessionService(t, newMemoryAccountRepo(account))

	result, err := svc.Login(context.Background(), account.Email, "secreta123")
	require.NoError(t, err)

	assert.False(t, result.RequiresCompletion)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 5*time.Second)

	subject, err := tm.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, account.Email, subject)
}

func TestLoginWrongPassword(t *testing.T) {
	account := seedAccount(t, "secreta123", true)
	svc, _ := newTestSessionService(t, newMemoryAccountRepo(account))

	_, err := svc.Login(context.Background(), account.Email, "incorrecta")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _ := newTestSessionService(t, newMemoryAccountRepo())

	_, err := svc.Login(context.Background(), "fantasma@tecsup.edu.pe", "da-igual")
	require.Error(t, err)
	// Unknown account and bad password are indistinguishable on the wire.
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
}

func TestLoginIncompleteProfileStillIssuesToken(t *testing.T) {
	account := seedAccount(t, "secreta123", false)
	svc, tm := newTestSessionService(t, newMemoryAccountRepo(account))

	result, err := svc.Login(context.Background(), account.Email, "secreta123")
	require.NoError(t, err)

	assert.True(t, result.RequiresCompletion)
	_, err = tm.Verify(result.Token)
	assert.NoError(t, err, "completion state never blocks the session")
}

func TestLogoutRevokesToken(t *testing.T) {
	account := seedAccount(t, "secreta123", true)
	svc, _ := newTestSessionService(t, newMemoryAccountRepo(account))

	login, err := svc.Login(context.Background(), account.Email, "secreta123")
	require.NoError(t, err)

	result := svc.Logout(context.Background(), login.Token)
	assert.True(t, result.TokenInvalidated)
	assert.Equal(t, account.Email, result.Subject)

	status := svc.Status(login.Token)
	assert.True(t, status.IsRevoked)
	assert.False(t, status.IsValid)
}

func TestLogoutNeverFails(t *testing.T) {
	svc, _ := newTestSessionService(t, newMemoryAccountRepo())

	assert.NotPanics(t, func() {
		empty := svc.Logout(context.Background(), "")
		assert.False(t, empty.TokenInvalidated)

		garbage := svc.Logout(context.Background(), "not-a-token")
		assert.True(t, garbage.TokenInvalidated)
		assert.Empty(t, garbage.Subject)
	})
}

func TestStatusOnLiveToken(t *testing.T) {
	account := seedAccount(t, "secreta123", true)
	svc, _ := newTestSessionService(t, newMemoryAccountRepo(account))

	login, err := svc.Login(context.Background(), account.Email, "secreta123")
	require.NoError(t, err)

	status := svc.Status(login.Token)
	assert.True(t, status.IsValid)
	assert.False(t, status.IsRevoked)
	assert.Equal(t, account.Email, status.Subject)
}

func TestStatusOnGarbageToken(t *testing.T) {
	svc, _ := newTestSessionService(t, newMemoryAccountRepo())

	status := svc.Status("garbage")
	assert.False(t, status.IsValid)
	assert.False(t, status.IsRevoked)
	assert.Empty(t, status.Subject)
}

func TestRevocationStats(t *testing.T) {
	account := seedAccount(t, "secreta123", true)
	svc, _ := newTestSessionService(t, newMemoryAccountRepo(account))

	login, err := svc.Login(context.Background(), account.Email, "secreta123")
	require.NoError(t, err)
	svc.Logout(context.Background(), login.Token)

	stats := svc.RevocationStats()
	assert.Equal(t, 1, stats.RevokedCount)
}
