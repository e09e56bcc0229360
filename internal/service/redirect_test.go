package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutec/campus-backend/internal/config"
)

var testFrontend = config.FrontendConfig{
	BaseURL:   "http://localhost:5173",
	HomePath:  "/home",
	LoginPath: "/",
}

func TestSuccessRedirect(t *testing.T) {
	decision := SuccessRedirect(testFrontend, "tok.en.value", false, false)
	assert.Equal(t, "http://localhost:5173/home?token=tok.en.value", decision.TargetURL)
}

func TestSuccessRedirectFlags(t *testing.T) {
	decision := SuccessRedirect(testFrontend, "abc", true, true)

	parsed, err := url.Parse(decision.TargetURL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "abc", query.Get("token"))
	assert.Equal(t, "true", query.Get("new"))
	assert.Equal(t, "true", query.Get("incomplete"))
}

func TestSuccessRedirectEscapesToken(t *testing.T) {
	decision := SuccessRedirect(testFrontend, "a b&c", false, false)
	assert.NotContains(t, decision.TargetURL, " ")
	assert.NotContains(t, decision.TargetURL, "&c")
}

func TestFailureRedirect(t *testing.T) {
	decision := FailureRedirect(testFrontend, "solo se permiten cuentas institucionales")

	parsed, err := url.Parse(decision.TargetURL)
	require.NoError(t, err)
	assert.Equal(t, "/", parsed.Path)
	assert.Equal(t, "solo se permiten cuentas institucionales", parsed.Query().Get("error"))
}
