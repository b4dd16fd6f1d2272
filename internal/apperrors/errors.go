// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors the handler layer maps onto HTTP statuses. Services wrap
// these with context via fmt.Errorf("...: %w", ...).
var (
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
)

// InvalidTransitionError reports a rejected workflow transition along with
// the request's current status, which the response message must include.
type InvalidTransitionError struct {
	Current   string
	Requested string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition to %s: request is currently %s", e.Requested, e.Current)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// NotFoundError carries the resource kind for 404 messages.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ForbiddenError carries the denial reason for 403 messages.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return "forbidden"
	}
	return e.Reason
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}
