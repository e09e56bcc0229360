package service

import (
	"net/url"

	"github.com/edutec/campus-backend/internal/config"
)

// RedirectDecision is the browser destination computed after the
// identity-provider callback. Building it is pure; writing the HTTP
// redirect stays in the handler layer.
type RedirectDecision struct {
	TargetURL string
}

// SuccessRedirect sends the browser to the frontend home with the session
// token, tagging first-time logins and incomplete profiles.
func SuccessRedirect(frontend config.FrontendConfig, token string, isNew, incomplete bool) RedirectDecision {
	target := frontend.HomeURL() + "?token=" + url.QueryEscape(token)
	if isNew {
		target += "&new=true"
	}
	if incomplete {
		target += "&incomplete=true"
	}
	return RedirectDecision{TargetURL: target}
}

// FailureRedirect sends the browser back to the login page with a
// human-readable message.
func FailureRedirect(frontend config.FrontendConfig, message string) RedirectDecision {
	return RedirectDecision{TargetURL: frontend.LoginURL() + "?error=" + url.QueryEscape(message)}
}
