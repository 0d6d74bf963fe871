package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself. Domain errors carry their
// own codes and pass through unchanged.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInternal:     http.StatusInternalServerError,

	"ALREADY_EXISTS": http.StatusConflict,
	"INVALID_STATE":  http.StatusUnprocessableEntity,

	// Failed logins must not leak whether the account exists
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// INVALID_* codes not mapped above are input validation failures and
// map to 400; anything unknown is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
