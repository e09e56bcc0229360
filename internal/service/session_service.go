package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/repository"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

const codeInvalidCredentials = "INVALID_CREDENTIALS"

// LoginResult carries the outcome of a successful credential login. A login
// against an incomplete profile still yields a usable token; the flag only
// tells the frontend to route through the completion form.
type LoginResult struct {
	Account            *domain.Account
	Token              string
	ExpiresAt          time.Time
	RequiresCompletion bool
}

// LogoutResult reports what logout actually did. Logout itself never fails
// from the caller's perspective.
type LogoutResult struct {
	TokenInvalidated bool
	Subject          string
}

// TokenStatus is the read-only introspection result.
type TokenStatus struct {
	IsValid   bool
	IsRevoked bool
	Subject   string
}

// SessionService coordinates login, logout and token introspection.
type SessionService struct {
	accounts    repository.AccountRepository
	tokens      *auth.TokenManager
	revocations *auth.RevocationStore
	logger      *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(accounts repository.AccountRepository, tokens *auth.TokenManager, revocations *auth.RevocationStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		accounts:    accounts,
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
	}
}

// Login validates credentials and issues a session token.
func (s *SessionService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Same code and message as a bad password, so the response
			// does not reveal whether the account exists.
			return nil, apperrors.NewUnauthorizedCode(codeInvalidCredentials, "invalid credentials")
		}
		return nil, err
	}

	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		s.logger.Info("login rejected", zap.String("email", email))
		return nil, apperrors.NewUnauthorizedCode(codeInvalidCredentials, "invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(account.Email)
	if err != nil {
		return nil, err
	}

	requiresCompletion := account.RequiresCompletion()
	s.logger.Info("login succeeded",
		zap.String("email", email),
		zap.Bool("requires_completion", requiresCompletion))

	return &LoginResult{
		Account:            account,
		Token:              token,
		ExpiresAt:          expiresAt,
		RequiresCompletion: requiresCompletion,
	}, nil
}

// Logout revokes the token best-effort. An absent, malformed or already
// expired token is still a successful logout for the end user.
func (s *SessionService) Logout(_ context.Context, token string) LogoutResult {
	result := LogoutResult{}

	if token == "" {
		s.logger.Info("logout without token")
		return result
	}

	if subject, err := s.tokens.Verify(token); err == nil {
		result.Subject = subject
	}

	s.revocations.Revoke(token)
	result.TokenInvalidated = true

	s.logger.Info("logout completed", zap.String("subject", result.Subject))
	return result
}

// Status introspects a token without side effects.
func (s *SessionService) Status(token string) TokenStatus {
	status := TokenStatus{
		IsRevoked: s.revocations.IsRevoked(token),
	}
	if subject, err := s.tokens.Verify(token); err == nil {
		status.Subject = subject
	}
	status.IsValid = !status.IsRevoked && status.Subject != "" && s.revocations.IsValid(token)
	return status
}

// RevocationStats exposes store sizes for the debug endpoint.
func (s *SessionService) RevocationStats() auth.RevocationStats {
	return s.revocations.Stats()
}
