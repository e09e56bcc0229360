package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/events"
	"github.com/edutec/campus-backend/internal/repository"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

// idpAvatarMarker identifies avatars sourced from the identity provider.
// A stored avatar containing it may be refreshed; anything else is a
// user-customized image and is never overwritten.
const idpAvatarMarker = "googleusercontent.com"

// LinkResult is the outcome of linking an external identity.
type LinkResult struct {
	Account            *domain.Account
	Token              string
	IsNew              bool
	RequiresCompletion bool
}

// IdentityLinker provisions or merges local accounts from identity-provider
// assertions and issues a session token for the result.
type IdentityLinker struct {
	accounts            repository.AccountRepository
	tokens              *auth.TokenManager
	dispatcher          events.Dispatcher
	allowedDomain       string
	bcryptCost          int
	defaultDepartmentID int64
	logger              *zap.Logger
}

// NewIdentityLinker builds the linker.
func NewIdentityLinker(accounts repository.AccountRepository, tokens *auth.TokenManager, dispatcher events.Dispatcher, allowedDomain string, bcryptCost int, logger *zap.Logger) *IdentityLinker {
	return &IdentityLinker{
		accounts:            accounts,
		tokens:              tokens,
		dispatcher:          dispatcher,
		allowedDomain:       allowedDomain,
		bcryptCost:          bcryptCost,
		defaultDepartmentID: 1,
		logger:              logger,
	}
}

// Link applies the domain allowlist, then provisions or merges the account
// and issues a session token. Calling it twice with the same email never
// creates a second account.
func (l *IdentityLinker) Link(ctx context.Context, identity domain.Identity) (*LinkResult, error) {
	email := strings.TrimSpace(identity.Email)
	if !strings.HasSuffix(email, l.allowedDomain) {
		l.logger.Warn("identity outside institutional domain", zap.String("email", email))
		return nil, apperrors.NewForbiddenDomain("only institutional " + l.allowedDomain + " accounts are allowed")
	}

	account, err := l.accounts.GetByEmail(ctx, email)
	isNew := false
	switch {
	case err == pgx.ErrNoRows:
		account, err = l.provision(ctx, email, identity)
		if err != nil {
			return nil, err
		}
		isNew = true
	case err != nil:
		return nil, err
	default:
		if err := l.merge(ctx, account, identity); err != nil {
			return nil, err
		}
	}

	token, _, err := l.tokens.Issue(account.Email)
	if err != nil {
		return nil, err
	}

	requiresCompletion := account.RequiresCompletion()
	l.publishLinked(ctx, account, isNew, requiresCompletion)

	l.logger.Info("identity linked",
		zap.String("email", email),
		zap.Bool("is_new", isNew),
		zap.Bool("requires_completion", requiresCompletion))

	return &LinkResult{
		Account:            account,
		Token:              token,
		IsNew:              isNew,
		RequiresCompletion: requiresCompletion,
	}, nil
}

// provision creates a minimal account. Career, cycle and section stay unset
// to force the profile-completion step on first login.
func (l *IdentityLinker) provision(ctx context.Context, email string, identity domain.Identity) (*domain.Account, error) {
	hash, err := auth.HashPassword(auth.RandomPassword(), l.bcryptCost)
	if err != nil {
		return nil, err
	}

	departmentID := l.defaultDepartmentID
	account := &domain.Account{
		FirstName:    identity.GivenName,
		LastName:     identity.FamilyName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleStudent,
		DepartmentID: &departmentID,
		AvatarURL:    identity.AvatarURL,
	}
	if err := l.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// merge refreshes mutable fields on an existing account and persists only
// when something actually changed.
func (l *IdentityLinker) merge(ctx context.Context, account *domain.Account, identity domain.Identity) error {
	changed := false

	if identity.GivenName != "" && account.FirstName != identity.GivenName {
		account.FirstName = identity.GivenName
		changed = true
	}
	if identity.FamilyName != "" && account.LastName != identity.FamilyName {
		account.LastName = identity.FamilyName
		changed = true
	}
	if identity.AvatarURL != "" && avatarOverridable(account.AvatarURL) && account.AvatarURL != identity.AvatarURL {
		account.AvatarURL = identity.AvatarURL
		changed = true
	}

	if !changed {
		return nil
	}
	return l.accounts.Update(ctx, account)
}

// avatarOverridable reports whether the stored avatar may be replaced by a
// fresh identity-provider image.
func avatarOverridable(stored string) bool {
	return stored == "" || strings.Contains(stored, idpAvatarMarker)
}

func (l *IdentityLinker) publishLinked(ctx context.Context, account *domain.Account, isNew, requiresCompletion bool) {
	if l.dispatcher == nil {
		return
	}
	_ = l.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountLinked,
		Subject:   account.Email,
		Timestamp: time.Now(),
		Payload: events.AccountLinkedPayload{
			Email:     account.Email,
			IsNew:     isNew,
			Completed: !requiresCompletion,
		},
	})
}
