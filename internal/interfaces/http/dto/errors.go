package dto

import "net/http"

// Error codes the API emits. Domain errors carry these codes directly; the
// HTTP layer only maps them to status codes.
const (
	// ErrCodeInternal is used for unexpected errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used for invalid input
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource does not exist
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeNotConfigured is used when a required credential is missing
	ErrCodeNotConfigured = "CONFIGURATION_ERROR"
	// ErrCodeTransport is used when an upstream could not be reached
	ErrCodeTransport = "TRANSPORT_ERROR"
	// ErrCodeBackend is used when an upstream rejected the request
	ErrCodeBackend = "BACKEND_ERROR"
	// ErrCodeExtraction is used when a supplier page yields no usable product
	ErrCodeExtraction = "EXTRACTION_ERROR"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Missing credentials are 503 (the deployment, not the caller, is at fault);
// upstream transport and backend failures surface as 502.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeNotConfigured: http.StatusServiceUnavailable,
	ErrCodeTransport:     http.StatusBadGateway,
	ErrCodeBackend:       http.StatusBadGateway,
	ErrCodeExtraction:    http.StatusUnprocessableEntity,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeInvalidState:  http.StatusUnprocessableEntity,
	ErrCodeRateLimited:   http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 for unknown
// codes.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
