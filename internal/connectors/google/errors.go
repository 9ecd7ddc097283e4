package google

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// Common Google API errors. Each wraps the matching domain error so callers
// outside this package can test with errors.Is against domain sentinels.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = fmt.Errorf("google: unauthorised (invalid credentials): %w", domain.ErrAuthInvalid)

	// ErrForbidden indicates the contacts scope was not granted.
	ErrForbidden = fmt.Errorf("google: forbidden (insufficient permissions): %w", domain.ErrAccessDenied)

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = fmt.Errorf("google: resource not found: %w", domain.ErrNotFound)

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = fmt.Errorf("google: rate limit exceeded: %w", domain.ErrRateLimited)
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || hasCode(err, http.StatusUnauthorized)
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || hasCode(err, http.StatusForbidden)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || hasCode(err, http.StatusNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || hasCode(err, http.StatusTooManyRequests)
}

// RetryAfter returns the Retry-After hint of a 429 response in seconds,
// or 0 when the response carried none.
func RetryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs < 0 {
		return 0
	}
	return secs
}

// WrapError converts a Google API error to a more specific error type.
// Errors it does not recognise are returned unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("google: %w: %w", domain.ErrStoreUnavailable, err)
	}
}

func hasCode(err error, code int) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == code
}
