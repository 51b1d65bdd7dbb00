// GO TESTING BASICS:
// 1. Test files MUST end in _test.go — Go's tooling auto-discovers them
// 2. Test functions MUST start with "Test" and take *testing.T as the only param
// 3. Same package as the code being tested (so we can access unexported stuff)
// 4. Run with: go test ./internal/apperror/ -v  (-v = verbose, shows each test name)
package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// TABLE-DRIVEN TESTS:
// This is Go's idiomatic pattern for testing multiple cases.
// Instead of writing separate test functions, we define a slice of test cases
// and loop over them — every case gets a name, and the assertion logic is
// written once.

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string // Descriptive name for test output
		err       error  // The error to test
		target    error  // What we expect it to match
		wantMatch bool   // Should errors.Is() return true?
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("position", 42),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "NotFoundKey wraps ErrNotFound",
			err:       NotFoundKey("user", "github:123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("title", "title is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("email already registered"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Unauthenticated wraps ErrUnauthenticated",
			err:       Unauthenticated("valid session required"),
			target:    ErrUnauthenticated,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("candidate", 7),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "ValidationFailed does NOT match ErrNotFound",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

// TestErrorsIs_ThroughWrapping verifies the sentinel survives fmt.Errorf %w
// wrapping — services wrap repository errors with context, and the HTTP
// layer must still classify them correctly.
func TestErrorsIs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("updating position: %w", NotFound("position", 9))

	if !errors.Is(wrapped, ErrNotFound) {
		t.Errorf("errors.Is through a %%w wrapper = false, want true")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As through a %w wrapper failed to find *AppError")
	}
	if appErr.Message != "position not found with id 9" {
		t.Errorf("Message = %q, want %q", appErr.Message, "position not found with id 9")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("position", 42),
			wantMessage: "position not found with id 42",
		},
		{
			name:        "NotFoundKey message includes resource and key",
			err:         NotFoundKey("user", "github:123"),
			wantMessage: "user not found: github:123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("title", "title is required"),
			wantMessage: "title is required",
		},
		{
			name:        "Conflict uses custom message",
			err:         Conflict("email already registered"),
			wantMessage: "email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	// Unwrap() returning the sentinel is what makes errors.Is() work.
	err := NotFound("candidate", 3)

	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	// The Field travels with the error so the 400 response can name
	// exactly which field was rejected.
	err := ValidationFailed("email", "email is required")

	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}
