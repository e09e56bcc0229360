package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret, 60)
	require.NoError(t, err)
	return tm
}

// signToken builds a token with arbitrary claims so tests can produce
// expired or foreign-key tokens.
func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestNewTokenManagerRejectsEmptySecret(t *testing.T) {
	_, err := NewTokenManager("", 60)
	assert.Error(t, err)

	_, err = NewTokenManager("   ", 60)
	assert.Error(t, err)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)

	token, expiresAt, err := tm.Issue("alumno@tecsup.edu.pe")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(tm.TTL()), expiresAt, 5*time.Second)

	subject, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alumno@tecsup.edu.pe", subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := newTestTokenManager(t)
	token := signToken(t, testSecret, "alumno@tecsup.edu.pe", time.Now().Add(-time.Minute))

	_, err := tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSignature(t *testing.T) {
	tm := newTestTokenManager(t)
	token := signToken(t, "a-different-secret", "alumno@tecsup.edu.pe", time.Now().Add(time.Hour))

	_, err := tm.Verify(token)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	tm := newTestTokenManager(t)

	for _, token := range []string{"", "garbage", "a.b.c", "header.payload"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestVerifyRejectsEmptySubject(t *testing.T) {
	tm := newTestTokenManager(t)
	token := signToken(t, testSecret, "", time.Now().Add(time.Hour))

	_, err := tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
