package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorPredicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("bad input", nil)))
	assert.True(t, IsNotFound(NewNotFound("fault", nil)))
	assert.True(t, IsConflict(NewConflict("replay", nil)))

	wrapped := fmt.Errorf("handler: %w", NewValidationError("bad input", nil))
	assert.True(t, IsValidation(wrapped))

	assert.False(t, IsValidation(errors.New("plain")))
	assert.False(t, IsNotFound(NewConflict("replay", nil)))
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	de := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, de)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)

	de = ToDomainError(errors.New("connection reset"))
	require.NotNil(t, de)
	assert.Equal(t, "PERSISTENCE_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	// Internal detail stays out of the client-facing message.
	assert.Equal(t, "internal server error", de.Message)

	original := NewConflict("replay", nil)
	assert.Same(t, original, ToDomainError(original))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewPersistenceError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "internal server error")
}
