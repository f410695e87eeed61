package domain

import (
	"errors"
	"net/http"
)

// HTTPError is implemented by domain errors that map to an HTTP status.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a referenced resource does not exist.
	// Lookups report this before any ownership check runs, so a caller
	// cannot distinguish "absent" from "not yours".
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input.
	ValidationError struct {
		Message string
	}

	// UnauthenticatedError indicates no valid session principal.
	UnauthenticatedError struct {
		Message string
	}

	// ForbiddenError indicates an authenticated caller with
	// insufficient role or ownership. Never downgraded to, or from,
	// UnauthenticatedError.
	ForbiddenError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string        { return e.Message }
func (e *ValidationError) Error() string      { return e.Message }
func (e *UnauthenticatedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string       { return e.Message }

func (e *NotFoundError) StatusCode() int        { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *UnauthenticatedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int       { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ConflictError carries details about the resource that already exists.
type ConflictError struct {
	Message      string
	ResourceType string // property, project, thread, payment
	ResourceID   string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
