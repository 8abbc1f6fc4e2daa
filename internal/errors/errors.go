package errors

import "errors"

// Sentinel errors shared across the service. Services return these (wrapped
// with context via fmt.Errorf and %w); the API layer maps them to HTTP status
// codes with errors.Is, so business logic never sees status codes.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed validation.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream signifies that the chat platform API failed or returned
	// an unusable response. Mapped to 502 Bad Gateway.
	ErrUpstream = errors.New("upstream request failed")

	// ErrConflict signifies the operation conflicts with current resource
	// state. Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies the caller is not authorized for the action.
	// Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrInternal is the generic unexpected failure. Mapped to 500.
	ErrInternal = errors.New("internal server error")
)
