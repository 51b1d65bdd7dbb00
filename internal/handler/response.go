// Package handler contains the HTTP layer: request parsing, response
// writing, and nothing else. Business rules live in internal/service;
// these functions translate between JSON and the service contracts.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/hiredesk/internal/apperror"
)

// ErrorResponse is the single error shape every endpoint returns.
// Field is set only for validation errors, naming the offending field so
// the form can highlight it.
type ErrorResponse struct {
	Error   string `json:"error"`           // machine-readable class, e.g. "not_found"
	Message string `json:"message"`         // human-readable description
	Field   string `json:"field,omitempty"` // offending field for validation errors
}

// writeJSON sends a JSON response. Headers and status must go out before
// the body — Encode writes, and after the first write the headers are
// frozen.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error onto HTTP in exactly one place.
//
// The service layer returns apperror sentinels; errors.Is walks the wrap
// chain, so any number of fmt.Errorf("...: %w") layers in between don't
// matter. Unknown errors become a generic 500 — the raw message might
// contain SQL or file paths and never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		class := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			class = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			class = "not_found"
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized
			class = "unauthenticated"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			class = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   class,
			Message: appErr.Message,
			Field:   appErr.Field,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// parseID extracts the numeric {id} path parameter. A non-numeric id is a
// validation failure, not a 404 — the route matched, the value didn't.
func parseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.ValidationFailed("id", "id must be a positive integer")
	}
	return id, nil
}

// decodeBody decodes a JSON request body into dst, rejecting fields the
// target struct doesn't declare — a misspelled field in a partial update
// would otherwise silently do nothing.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "invalid JSON body")
	}
	return nil
}
