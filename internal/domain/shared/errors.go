package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Is matches domain errors by code, so a WithMessage copy still matches its
// sentinel through errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy of the error carrying a more specific message.
// The code is preserved so HTTP status mapping still applies.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrNotConfigured = NewDomainError("CONFIGURATION_ERROR", "Required configuration is missing")
	ErrValidation    = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrTransport     = NewDomainError("TRANSPORT_ERROR", "Upstream request failed")
	ErrBackend       = NewDomainError("BACKEND_ERROR", "Commerce backend reported an error")
	ErrExtraction    = NewDomainError("EXTRACTION_ERROR", "Required fields could not be extracted")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
