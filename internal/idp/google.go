package idp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/edutec/campus-backend/internal/config"
	"github.com/edutec/campus-backend/internal/domain"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

// Provider exchanges an authorization code for a verified identity
// assertion. Verifying the assertion's own authenticity is Google's side of
// the contract; this client only transports the attributes.
type Provider interface {
	AuthCodeURL(state string) string
	FetchIdentity(ctx context.Context, code string) (*domain.Identity, error)
}

type googleProvider struct {
	oauth *oauth2.Config
}

// NewGoogleProvider builds the Google OAuth2 provider.
func NewGoogleProvider(cfg config.OAuthConfig) (Provider, error) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, errors.New("google oauth client id and secret are required")
	}
	return &googleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
	}, nil
}

// AuthCodeURL builds the browser authorization URL.
func (p *googleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// FetchIdentity exchanges the code and fetches the userinfo attributes.
// Failures talking to Google come back as upstream identity errors so the
// caller can tell them apart from its own.
func (p *googleProvider) FetchIdentity(ctx context.Context, code string) (*domain.Identity, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.NewUpstreamIdentityError(fmt.Errorf("google code exchange: %w", err))
	}

	resp, err := p.oauth.Client(ctx, token).Get(userinfoEndpoint)
	if err != nil {
		return nil, apperrors.NewUpstreamIdentityError(fmt.Errorf("google userinfo request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamIdentityError(fmt.Errorf("google userinfo status %d", resp.StatusCode))
	}

	var payload struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewUpstreamIdentityError(fmt.Errorf("google userinfo decode: %w", err))
	}
	if payload.Email == "" {
		return nil, apperrors.NewUpstreamIdentityError(errors.New("google userinfo missing email"))
	}

	return &domain.Identity{
		Email:      payload.Email,
		GivenName:  payload.GivenName,
		FamilyName: payload.FamilyName,
		AvatarURL:  payload.Picture,
	}, nil
}
