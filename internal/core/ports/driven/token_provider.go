package driven

import (
	"context"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it will be refreshed automatically.
	// Returns empty string for no-auth stores.
	GetToken(ctx context.Context) (string, error)

	// AuthMethod returns the authentication method (oauth, none).
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if valid authentication is available.
	// Always true for no-auth stores (NullTokenProvider).
	IsAuthenticated() bool
}
