package auth

import (
	"context"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
)

// Ensure NullTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullTokenProvider)(nil)

// NullTokenProvider is for stores that require no authentication,
// such as a vCard directory or a local SQLite address book.
type NullTokenProvider struct{}

// NewNullTokenProvider creates a token provider for no-auth stores.
func NewNullTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{}
}

// GetToken returns an empty string since no authentication is needed.
func (p *NullTokenProvider) GetToken(_ context.Context) (string, error) {
	return "", nil
}

// AuthMethod returns AuthMethodNone.
func (p *NullTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodNone
}

// IsAuthenticated always returns true since no-auth is always "authenticated".
func (p *NullTokenProvider) IsAuthenticated() bool {
	return true
}
