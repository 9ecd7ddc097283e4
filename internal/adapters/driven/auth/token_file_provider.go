package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/logger"
)

// Ensure TokenFileProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*TokenFileProvider)(nil)

// ContactsScope is the read-only Google contacts scope.
const ContactsScope = "https://www.googleapis.com/auth/contacts.readonly"

// GoogleOAuthConfig returns the OAuth client configuration for Google contacts.
func GoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{ContactsScope},
	}
}

// TokenFileProvider serves OAuth access tokens stored in a JSON file,
// refreshing them through the oauth2 config and writing refreshed tokens
// back to the file.
type TokenFileProvider struct {
	path   string
	config *oauth2.Config

	mu     sync.Mutex
	source oauth2.TokenSource
	last   string
}

// NewTokenFileProvider creates a provider backed by the token file at path.
// The file is read lazily on the first GetToken call.
func NewTokenFileProvider(path string, config *oauth2.Config) *TokenFileProvider {
	return &TokenFileProvider{
		path:   path,
		config: config,
	}
}

// GetToken returns a valid access token, refreshing it if necessary.
func (p *TokenFileProvider) GetToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == nil {
		stored, err := LoadToken(p.path)
		if err != nil {
			return "", err
		}
		tok := toOAuth2(stored)
		p.source = oauth2.ReuseTokenSource(tok, p.config.TokenSource(ctx, tok))
		p.last = tok.AccessToken
	}

	tok, err := p.source.Token()
	if err != nil {
		p.source = nil
		return "", fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, err)
	}

	if tok.AccessToken != p.last {
		logger.Debug("auth: access token refreshed, saving %s", p.path)
		if err := SaveToken(p.path, fromOAuth2(tok)); err != nil {
			return "", fmt.Errorf("save refreshed token: %w", err)
		}
		p.last = tok.AccessToken
	}

	return tok.AccessToken, nil
}

// AuthMethod returns AuthMethodOAuth.
func (p *TokenFileProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodOAuth
}

// IsAuthenticated returns true if the token file holds a usable token.
func (p *TokenFileProvider) IsAuthenticated() bool {
	tok, err := LoadToken(p.path)
	if err != nil {
		return false
	}
	if tok.RefreshToken != "" {
		return true
	}
	return tok.AccessToken != "" && !tok.IsExpired()
}

// Path returns the token file path.
func (p *TokenFileProvider) Path() string {
	return p.path
}

// LoadToken reads a token file.
func LoadToken(path string) (*domain.OAuthToken, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no token at %s", domain.ErrAuthRequired, path)
		}
		return nil, fmt.Errorf("read token: %w", err)
	}

	var tok domain.OAuthToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("%w: decode token: %w", domain.ErrAuthInvalid, err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token file is empty", domain.ErrAuthInvalid)
	}
	return &tok, nil
}

// SaveToken writes a token file readable only by the current user.
func SaveToken(path string, tok *domain.OAuthToken) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func toOAuth2(t *domain.OAuthToken) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

func fromOAuth2(t *oauth2.Token) *domain.OAuthToken {
	return &domain.OAuthToken{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

// SaveOAuth2Token writes a token obtained from an oauth2 exchange.
func SaveOAuth2Token(path string, tok *oauth2.Token) error {
	return SaveToken(path, fromOAuth2(tok))
}
