// Package google provides shared infrastructure for the Google contact store.
//
// This package contains the pieces the people store builds on:
//   - TokenSource adapter to bridge the TokenProvider port to oauth2.TokenSource
//   - Service factories for the People API client and the photo download client
//   - Error classification for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect People API quotas
//
// # Usage
//
//	ts := google.NewTokenSource(ctx, tokenProvider)
//	svc, err := google.NewPeopleService(ctx, ts)
//
// # OAuth2 Scopes
//
// The people store needs a single read-only scope:
//   - https://www.googleapis.com/auth/contacts.readonly (sensitive)
package google
