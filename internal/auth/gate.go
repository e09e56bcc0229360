package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/repository"
	apperrors "github.com/edutec/campus-backend/pkg/util"
)

const principalKey = "auth_principal"

// Verdict classifies a request before it reaches a handler.
type Verdict int

const (
	// VerdictPublic lets the request through with or without a token.
	VerdictPublic Verdict = iota
	// VerdictProtected requires a bearer token that verifies and is not revoked.
	VerdictProtected
)

type matchKind int

const (
	matchExact matchKind = iota
	matchPrefix
)

// Rule maps a path pattern (and optionally a method) to a verdict.
type Rule struct {
	Method  string // empty matches every method
	Pattern string
	Kind    matchKind
	Verdict Verdict
}

// PublicExact builds an exact-path public rule.
func PublicExact(pattern string) Rule {
	return Rule{Pattern: pattern, Kind: matchExact, Verdict: VerdictPublic}
}

// PublicPrefix builds a prefix public rule.
func PublicPrefix(pattern string) Rule {
	return Rule{Pattern: pattern, Kind: matchPrefix, Verdict: VerdictPublic}
}

// PublicPrefixForMethod builds a method-scoped prefix public rule.
func PublicPrefixForMethod(method, pattern string) Rule {
	return Rule{Method: method, Pattern: pattern, Kind: matchPrefix, Verdict: VerdictPublic}
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && !strings.EqualFold(r.Method, method) {
		return false
	}
	switch r.Kind {
	case matchExact:
		return path == r.Pattern
	case matchPrefix:
		return strings.HasPrefix(path, r.Pattern)
	default:
		return false
	}
}

// DefaultRules is the deployed route-classification table. Order matters:
// rules are evaluated top to bottom and the first match wins, with the
// trailing catch-all protecting everything not explicitly opened up.
func DefaultRules() []Rule {
	return []Rule{
		PublicExact("/"),
		PublicPrefix("/oauth2/"),
		PublicExact("/login"),
		PublicExact("/api/auth/login"),
		PublicExact("/api/auth/google-login"),
		// Logout and introspection take the token from the header themselves
		// and must stay reachable even when that token is dead.
		PublicExact("/api/auth/logout"),
		PublicExact("/api/auth/token/status"),
		PublicExact("/api/usuarios/register"),
		PublicExact("/api/usuarios/login"),

		// Registration cascade reads stay open so the signup form can
		// populate departments, careers, cycles and sections.
		PublicExact("/api/departamentos/activos"),
		PublicExact("/api/carreras/activas"),
		PublicPrefixForMethod(fiber.MethodGet, "/api/carreras/departamento/"),
		PublicExact("/api/ciclos/todos"),
		PublicPrefixForMethod(fiber.MethodGet, "/api/ciclos/carrera/"),
		PublicPrefixForMethod(fiber.MethodGet, "/api/secciones/carrera/"),

		PublicExact("/api/carreras/health"),
		PublicExact("/api/departamentos/health"),
		PublicExact("/api/ciclos/health"),
		PublicExact("/api/secciones/health"),

		PublicPrefix("/api/public/"),
		PublicExact("/error"),
		PublicPrefix("/api/debug/"),

		// Everything else requires authentication.
		{Pattern: "/", Kind: matchPrefix, Verdict: VerdictProtected},
	}
}

// Principal represents the authenticated caller.
type Principal struct {
	Subject string
	Account *domain.Account
}

// RequestGate classifies inbound requests and enforces authentication on
// protected ones.
type RequestGate struct {
	rules       []Rule
	tokens      *TokenManager
	revocations *RevocationStore
	accounts    repository.AccountRepository
	logger      *zap.Logger
}

// NewRequestGate constructs the gate.
func NewRequestGate(rules []Rule, tokens *TokenManager, revocations *RevocationStore, accounts repository.AccountRepository, logger *zap.Logger) *RequestGate {
	return &RequestGate{
		rules:       rules,
		tokens:      tokens,
		revocations: revocations,
		accounts:    accounts,
		logger:      logger,
	}
}

// Classify returns the verdict for a method and path. With no matching rule
// the request is protected.
func (g *RequestGate) Classify(method, path string) Verdict {
	for _, rule := range g.rules {
		if rule.matches(method, path) {
			return rule.Verdict
		}
	}
	return VerdictProtected
}

// Handle is the per-request middleware. Public routes always proceed;
// a valid token still attaches the caller's identity best-effort. Protected
// routes answer 401 with the structured body when the token is absent,
// fails verification, or was revoked.
func (g *RequestGate) Handle(c *fiber.Ctx) error {
	token := BearerToken(c.Get(fiber.HeaderAuthorization))
	verdict := g.Classify(c.Method(), c.Path())

	if verdict == VerdictPublic {
		if token != "" && g.revocations.IsValid(token) {
			if subject, err := g.tokens.Verify(token); err == nil {
				g.attachPrincipal(c, subject)
			}
		}
		return c.Next()
	}

	if token == "" {
		g.logger.Debug("missing token on protected route", zap.String("path", c.Path()))
		return writeUnauthorized(c, "authentication token required")
	}

	if !g.revocations.IsValid(token) {
		if g.revocations.IsRevoked(token) {
			g.logger.Info("revoked token rejected",
				zap.String("path", c.Path()),
				zap.String("code", apperrors.CodeTokenRevoked))
			return writeUnauthorized(c, "token has been invalidated")
		}
		if _, err := g.tokens.Verify(token); err != nil {
			g.logger.Debug("token rejected",
				zap.String("path", c.Path()),
				zap.String("code", classifyVerifyError(err)))
		}
		return writeUnauthorized(c, "token is invalid or expired")
	}

	subject, err := g.tokens.Verify(token)
	if err != nil {
		return writeUnauthorized(c, "token is invalid or expired")
	}

	account, err := g.accounts.GetByEmail(c.Context(), subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			g.logger.Warn("token subject has no account",
				zap.String("subject", subject),
				zap.String("code", apperrors.CodeUnknownSubject))
			return writeUnauthorized(c, "unknown account")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Subject: subject, Account: account})
	return c.Next()
}

func (g *RequestGate) attachPrincipal(c *fiber.Ctx, subject string) {
	principal := &Principal{Subject: subject}
	if account, err := g.accounts.GetByEmail(c.Context(), subject); err == nil {
		principal.Account = account
	}
	c.Locals(principalKey, principal)
}

func classifyVerifyError(err error) string {
	switch err {
	case ErrTokenExpired:
		return apperrors.CodeTokenExpired
	case ErrSignatureInvalid:
		return apperrors.CodeTokenMalformed
	default:
		return apperrors.CodeTokenMalformed
	}
}

// writeUnauthorized emits the wire contract for rejected requests.
func writeUnauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":         "Unauthorized",
		"message":       message,
		"timestamp":     time.Now().UnixMilli(),
		"requiresLogin": true,
	})
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.AccountRole) fiber.Handler {
	allowedSet := make(map[domain.AccountRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Account == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Account.Role]; !exists {
			return apperrors.NewForbidden(fmt.Sprintf("role %s not allowed", principal.Account.Role))
		}
		return c.Next()
	}
}
