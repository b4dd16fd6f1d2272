// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidTransitionError(t *testing.T) {
	err := &InvalidTransitionError{Current: "draft", Requested: "approved"}

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "cannot transition to approved: request is currently draft", err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Resource: "client"}

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "client not found", err.Error())
}

func TestForbiddenError(t *testing.T) {
	err := &ForbiddenError{Reason: "only the creator may submit"}
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "only the creator may submit", err.Error())

	empty := &ForbiddenError{}
	assert.Equal(t, "forbidden", empty.Error())
}

func TestWrappedSentinelsSurviveErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("fetching request: %w", &NotFoundError{Resource: "fi_request"})
	assert.ErrorIs(t, wrapped, ErrNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "fi_request", nf.Resource)

	validation := fmt.Errorf("%w: client_id is required", ErrValidation)
	assert.ErrorIs(t, validation, ErrValidation)
}
