package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/posdesk/core/internal/catalog"
	"github.com/posdesk/core/internal/staff"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeNotFound     = "not_found"
	ErrCodeUnauthorized = "unauthorised"
	ErrCodeConflict     = "conflict"
	ErrCodeUnavailable  = "unavailable"
	ErrCodeInternal     = "internal_error"
	ErrCodeValidation   = "validation_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// writeConflict writes a 409 error response.
func writeConflict(w http.ResponseWriter, message string) {
	writeError(w, http.StatusConflict, ErrCodeConflict, message)
}

// writeUnavailable writes a 503 error response.
func writeUnavailable(w http.ResponseWriter, message string) {
	writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// notFoundSentinels are the repository errors that map to a 404 response.
var notFoundSentinels = []error{
	staff.ErrStaffNotFound,
	catalog.ErrCategoryNotFound,
	catalog.ErrItemNotFound,
	catalog.ErrModifierNotFound,
	catalog.ErrOptionNotFound,
	catalog.ErrDiscountNotFound,
}

// writeRepoError maps repository sentinel errors onto the error envelope:
// not-found -> 404, missing parent -> 400, identifier or PIN collision -> 409,
// anything else -> 500.
func writeRepoError(w http.ResponseWriter, err error) {
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			writeNotFound(w, sentinel.Error())
			return
		}
	}
	if errors.Is(err, catalog.ErrParentNotFound) {
		writeBadRequest(w, err.Error())
		return
	}
	if errors.Is(err, staff.ErrPINExists) {
		writeConflict(w, "pin already in use")
		return
	}
	if isIDCollision(err) {
		writeConflict(w, "identifier already exists")
		return
	}
	writeInternalError(w, "internal server error")
}

// isIDCollision reports whether err is a primary key collision from
// either repository, the retry signal for allocated identifiers.
func isIDCollision(err error) bool {
	return errors.Is(err, catalog.ErrIDExists) || errors.Is(err, staff.ErrIDExists)
}
