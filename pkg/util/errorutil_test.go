package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamIdentityErrorKeepsCause(t *testing.T) {
	cause := errors.New("code exchange refused")
	err := NewUpstreamIdentityError(fmt.Errorf("google: %w", cause))

	de := ToDomainError(err)
	assert.Equal(t, CodeUpstreamIdentity, de.Code)
	assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
	assert.True(t, errors.Is(err, cause))
}

func TestUnauthorizedCodeKeepsStatus(t *testing.T) {
	err := NewUnauthorizedCode("INVALID_CREDENTIALS", "invalid credentials")

	de := ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
}
