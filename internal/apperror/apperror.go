// Package apperror defines the application's error taxonomy.
//
// Every failure the API can report falls into one of four classes:
// unauthenticated (401), validation (400), not found (404), or internal
// (500) — plus conflict (409) for unique-constraint violations in the SQL
// backend. Services and repositories return these; the HTTP layer translates
// them to status codes in exactly one place (handler.writeError).
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers classify failures with errors.Is against these —
// never by string matching.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// AppError carries a sentinel plus human-readable context.
//
// Unwrap() returns the sentinel, so errors.Is(err, ErrNotFound) works through
// any number of fmt.Errorf("...: %w", ...) wrappers added along the way.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // human-readable description, safe to return to clients
	Field   string // optional: the field that caused a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no record of the given kind exists with the given id.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// NotFoundKey is NotFound for string-keyed records (users).
func NotFoundKey(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, key),
	}
}

// ValidationFailed reports a malformed or missing field.
// The field name travels with the error so the 400 response can name it.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation (e.g. duplicate user email).
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthenticated reports a request with no valid session.
// HTTP handlers map this to 401; the client restarts the login flow.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}
