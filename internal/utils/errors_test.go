package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Classification(t *testing.T) {
	wrapped := fmt.Errorf("load cards: %w", NewAPIError(http.StatusUnauthorized, "Token expired", ""))

	assert.True(t, IsAuthError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.False(t, IsForbiddenError(wrapped))
	assert.True(t, IsNotFoundError(NewAPIError(http.StatusNotFound, "Card not found", "")))
	assert.True(t, IsForbiddenError(NewAPIError(http.StatusForbidden, "Forbidden", "")))
	assert.False(t, IsAuthError(errors.New("plain")))

	apiErr, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Token expired", apiErr.Message)
	assert.Equal(t, "API error (401): Token expired", apiErr.Error())
}

func TestValidationError(t *testing.T) {
	assert.Equal(t, "validation error for field 'email': email is required", NewValidationError("email", "email is required").Error())
	assert.Equal(t, "validation error: bad", NewValidationError("", "bad").Error())
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", NewValidationError("x", "y"))))
	assert.False(t, IsValidationError(errors.New("plain")))
}

func TestMultiError(t *testing.T) {
	errs := NewMultiError()
	errs.Add(nil)
	assert.NoError(t, errs.ErrorOrNil())

	errs.Add(NewValidationError("first_name", "first_name is required"))
	assert.Equal(t, "validation error for field 'first_name': first_name is required", errs.Error())

	errs.Add(NewAPIError(http.StatusBadRequest, "bad", ""))
	err := errs.ErrorOrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.True(t, IsValidationError(err))

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
