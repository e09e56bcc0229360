package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Verification failure modes. Callers that only need a verdict can treat any
// non-nil error as invalid; logs and the status endpoint keep them distinct.
var (
	ErrTokenMalformed   = errors.New("token malformed")
	ErrTokenExpired     = errors.New("token expired")
	ErrSignatureInvalid = errors.New("token signature invalid")
)

// TokenManager issues and verifies signed identity tokens. It holds no
// mutable state and is safe for unlimited concurrent callers.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. An empty secret is a configuration
// error; the caller treats it as fatal at startup.
func NewTokenManager(secret string, ttlMinutes int) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token signing secret must not be empty")
	}
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}, nil
}

// Claims describes the token payload. The subject is the account's
// institutional email.
type Claims struct {
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject.
func (tm *TokenManager) Issue(subject string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded subject.
func (tm *TokenManager) Verify(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrSignatureInvalid
		default:
			return "", ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
