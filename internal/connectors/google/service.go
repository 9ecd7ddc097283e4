package google

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
)

// ContactsReadonlyScope is the OAuth scope the people store requests.
const ContactsReadonlyScope = people.ContactsReadonlyScope

// NewPeopleService creates a People API service using the provided TokenSource.
// Extra options are appended, so tests can point the client at a fake endpoint.
func NewPeopleService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*people.Service, error) {
	all := append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	return people.NewService(ctx, all...)
}

// NewHTTPClient returns an authenticated HTTP client for requests the
// generated client does not cover, such as photo downloads.
func NewHTTPClient(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	return oauth2.NewClient(ctx, ts)
}
