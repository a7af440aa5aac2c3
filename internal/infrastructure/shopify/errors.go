package shopify

import "github.com/zaylo/backend/internal/domain/shared"

// Sentinel errors for commerce backend calls. Callers match with errors.Is
// and the HTTP layer maps the underlying DomainError code to a status.
var (
	// ErrNotConfigured is returned without any network I/O when the store
	// domain or the relevant access token is missing.
	ErrNotConfigured = shared.ErrNotConfigured.WithMessage("shopify: store domain or access token not configured")

	// ErrUnavailable indicates the API could not be reached at all.
	ErrUnavailable = shared.ErrTransport.WithMessage("shopify: api unreachable")

	// ErrRequestFailed indicates the API answered with an HTTP error status.
	ErrRequestFailed = shared.ErrBackend.WithMessage("shopify: request failed")

	// ErrBackendRejected indicates a well-formed response carrying GraphQL
	// errors or user errors.
	ErrBackendRejected = shared.ErrBackend.WithMessage("shopify: operation rejected")

	// ErrInvalidResponse indicates a response body that could not be decoded.
	ErrInvalidResponse = shared.ErrBackend.WithMessage("shopify: invalid response payload")
)
