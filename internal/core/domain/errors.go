package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown contact store type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Access Errors.

	// ErrAccessDenied indicates the user has not granted access to the address book.
	ErrAccessDenied = errors.New("access to contacts denied")

	// ErrAuthRequired indicates the store requires authentication but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the authentication credentials are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// Store Errors.

	// ErrStoreUnavailable indicates the contact store could not be queried.
	ErrStoreUnavailable = errors.New("contact store unavailable")

	// ErrStoreClosed indicates the contact store has been closed.
	ErrStoreClosed = errors.New("contact store closed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
