package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/repository"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

// ProfileUpdate carries the fields filled in by the completion form.
type ProfileUpdate struct {
	CareerID     *int64
	CycleNumber  *int
	DepartmentID *int64
	SectionID    *int64
	Phone        string
}

// AccountService handles registration and profile management.
type AccountService struct {
	accounts      repository.AccountRepository
	allowedDomain string
	bcryptCost    int
}

// NewAccountService builds the service.
func NewAccountService(accounts repository.AccountRepository, allowedDomain string, bcryptCost int) *AccountService {
	return &AccountService{
		accounts:      accounts,
		allowedDomain: allowedDomain,
		bcryptCost:    bcryptCost,
	}
}

// Register creates a fully validated account with a password.
func (s *AccountService) Register(ctx context.Context, account *domain.Account, password string) (*domain.Account, error) {
	if !strings.HasSuffix(account.Email, s.allowedDomain) {
		return nil, apperrors.NewForbiddenDomain("only institutional " + s.allowedDomain + " accounts are allowed")
	}
	if strings.TrimSpace(account.FirstName) == "" || strings.TrimSpace(account.LastName) == "" {
		return nil, apperrors.NewValidationError("first and last name are required", nil)
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	if _, err := s.accounts.GetByEmail(ctx, account.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = hash
	if account.Role == "" {
		account.Role = domain.RoleStudent
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetByEmail fetches an account by institutional email.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", map[string]any{"email": email})
		}
		return nil, err
	}
	return account, nil
}

// CompleteProfile fills in the academic-affiliation fields left unset by an
// identity-provider first login.
func (s *AccountService) CompleteProfile(ctx context.Context, email string, update ProfileUpdate) (*domain.Account, error) {
	account, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if update.CareerID != nil {
		account.CareerID = update.CareerID
	}
	if update.CycleNumber != nil {
		account.CycleNumber = update.CycleNumber
	}
	if update.DepartmentID != nil {
		account.DepartmentID = update.DepartmentID
	}
	if update.SectionID != nil {
		account.SectionID = update.SectionID
	}
	if update.Phone != "" {
		account.Phone = update.Phone
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
