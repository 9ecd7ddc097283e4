package google

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
)

// TokenSourceAdapter adapts a TokenProvider to oauth2.TokenSource so the
// People API client picks up refreshed tokens without knowing where they live.
type TokenSourceAdapter struct {
	provider driven.TokenProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
// The result is meant for option.WithTokenSource and oauth2.NewClient.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{
		provider: provider,
		ctx:      ctx,
	}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.GetToken(t.ctx)
	if err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, ErrUnauthorized
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}
