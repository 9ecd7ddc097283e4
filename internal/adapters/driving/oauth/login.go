package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// DefaultLoginTimeout bounds how long Login waits for the browser.
const DefaultLoginTimeout = 5 * time.Minute

// Opener presents the authorization URL to the user.
type Opener func(url string) error

// Login runs the authorization code flow with PKCE against a loopback
// redirect and returns the exchanged token. cfg.RedirectURL is overwritten.
func Login(ctx context.Context, cfg *oauth2.Config, open Opener) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	server := NewCallbackServer(0, state)
	if err := server.Start(); err != nil {
		return nil, err
	}
	defer func() { _ = server.Stop() }()

	flow := *cfg
	flow.RedirectURL = server.RedirectURI()

	verifier := oauth2.GenerateVerifier()
	authURL := flow.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	if open == nil {
		open = OpenBrowser
	}
	if err := open(authURL); err != nil {
		return nil, fmt.Errorf("open browser: %w", err)
	}

	code, err := server.WaitForCode(ctx)
	if err != nil {
		return nil, err
	}

	tok, err := flow.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	return tok, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
