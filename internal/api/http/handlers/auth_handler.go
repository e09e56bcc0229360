package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edutec/campus-backend/internal/api/dto"
	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/config"
	"github.com/edutec/campus-backend/internal/idp"
	"github.com/edutec/campus-backend/internal/service"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

// AuthHandler exposes session endpoints and the identity-provider callback.
type AuthHandler struct {
	sessions *service.SessionService
	linker   *service.IdentityLinker
	provider idp.Provider
	frontend config.FrontendConfig
	logger   *zap.Logger
}

// NewAuthHandler constructs the handler. provider may be nil when the IdP
// flow is not configured.
func NewAuthHandler(sessions *service.SessionService, linker *service.IdentityLinker, provider idp.Provider, frontend config.FrontendConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		linker:   linker,
		provider: provider,
		frontend: frontend,
		logger:   logger,
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.sessions.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token:              result.Token,
		Type:               "Bearer",
		RequiresCompletion: result.RequiresCompletion,
		User:               dto.NewAccountResponse(result.Account),
	})
}

// GoogleLogin handles GET /api/auth/google-login and returns the provider
// authorization URL for the frontend to navigate to.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	if h.provider == nil {
		return apperrors.NewDomainError("IDP_DISABLED", "identity provider not configured", http.StatusServiceUnavailable, nil)
	}
	return c.JSON(fiber.Map{
		"redirectUrl": h.provider.AuthCodeURL(uuid.NewString()),
	})
}

// OAuthCallback handles GET /oauth2/callback/google. Success and failure
// are both browser redirects; errors never surface as raw JSON here.
func (h *AuthHandler) OAuthCallback(c *fiber.Ctx) error {
	if h.provider == nil {
		return h.redirectFailure(c, "identity provider not configured")
	}
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warn("identity provider returned error", zap.String("error", errParam))
		return h.redirectFailure(c, "authorization was denied")
	}
	code := c.Query("code")
	if code == "" {
		return h.redirectFailure(c, "missing authorization code")
	}

	identity, err := h.provider.FetchIdentity(c.Context(), code)
	if err != nil {
		h.logger.Error("identity fetch failed", zap.Error(err))
		return h.redirectFailure(c, "could not verify your identity, please try again")
	}

	result, err := h.linker.Link(c.Context(), *identity)
	if err != nil {
		h.logger.Warn("identity link rejected", zap.Error(err))
		return h.redirectFailure(c, apperrors.ToDomainError(err).Message)
	}

	decision := service.SuccessRedirect(h.frontend, result.Token, result.IsNew, result.RequiresCompletion)
	return c.Redirect(decision.TargetURL, http.StatusFound)
}

func (h *AuthHandler) redirectFailure(c *fiber.Ctx, message string) error {
	decision := service.FailureRedirect(h.frontend, message)
	return c.Redirect(decision.TargetURL, http.StatusFound)
}

// Logout handles POST /api/auth/logout. Always succeeds for the caller.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	result := h.sessions.Logout(c.Context(), token)

	message := "session closed"
	if !result.TokenInvalidated {
		message = "session closed (no active token)"
	}
	return c.JSON(dto.LogoutResponse{
		Message:          message,
		UserEmail:        result.Subject,
		TokenInvalidated: result.TokenInvalidated,
		Timestamp:        time.Now().UnixMilli(),
	})
}

// TokenStatus handles GET /api/auth/token/status.
func (h *AuthHandler) TokenStatus(c *fiber.Ctx) error {
	token := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return c.JSON(dto.TokenStatusResponse{Timestamp: time.Now().UnixMilli()})
	}

	status := h.sessions.Status(token)
	return c.JSON(dto.TokenStatusResponse{
		IsValid:   status.IsValid,
		IsRevoked: status.IsRevoked,
		UserEmail: status.Subject,
		Timestamp: time.Now().UnixMilli(),
	})
}

// CurrentUser handles GET /api/auth/user.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.NewAccountResponse(principal.Account))
}
