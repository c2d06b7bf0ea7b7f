package dto

import "net/http"

// Error codes used by the HTTP layer itself. Domain errors carry their own
// codes; these cover transport-level failures.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes
// missing from the map fall back to 500 so a new domain error is loud
// rather than silently OK.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInternal:     http.StatusInternalServerError,
	"INVALID_INPUT":     http.StatusBadRequest,
	"INVALID_QUANTITY":  http.StatusBadRequest,
	"INVALID_SERIES":    http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	"FORBIDDEN":         http.StatusForbidden,

	ErrCodeNotFound:        http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_NUMBER":     http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule violations
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"OUTSTANDING_BALANCE":  http.StatusUnprocessableEntity,
	"ALREADY_CANCELLED":    http.StatusUnprocessableEntity,
	"INVALID_COUNTERPARTY": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
