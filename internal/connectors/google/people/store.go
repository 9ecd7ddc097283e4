package people

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"google.golang.org/api/option"
	peopleapi "google.golang.org/api/people/v1"

	"github.com/custodia-labs/addrbook/internal/connectors/google"
	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/logger"
)

// Ensure Store implements the ContactStore interface.
var _ driven.ContactStore = (*Store)(nil)

// MeResourceName is the People API resource of the authenticated user.
// Their connections are the default (and only) container.
const MeResourceName = "people/me"

// maxPhotoBytes caps a single photo download.
const maxPhotoBytes = 5 << 20

// Store reads contacts from the Google People API.
type Store struct {
	service       *peopleapi.Service
	httpClient    *http.Client
	tokenProvider driven.TokenProvider
	config        *Config
	rateLimiter   *google.RateLimiter
	photoLimiter  *google.RateLimiter

	mu     sync.Mutex
	closed bool
}

// New creates a Google People store authenticated through tokenProvider.
func New(ctx context.Context, tokenProvider driven.TokenProvider, cfg *Config, opts ...option.ClientOption) (*Store, error) {
	if tokenProvider == nil {
		return nil, domain.ErrAuthRequired
	}

	ts := google.NewTokenSource(ctx, tokenProvider)
	svc, err := google.NewPeopleService(ctx, ts, opts...)
	if err != nil {
		return nil, fmt.Errorf("create people service: %w", err)
	}

	return NewWithService(svc, google.NewHTTPClient(ctx, ts), tokenProvider, cfg), nil
}

// NewWithService creates a store over an existing People API service.
// httpClient is used for photo downloads.
func NewWithService(
	svc *peopleapi.Service,
	httpClient *http.Client,
	tokenProvider driven.TokenProvider,
	cfg *Config,
) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Store{
		service:       svc,
		httpClient:    httpClient,
		tokenProvider: tokenProvider,
		config:        cfg,
		rateLimiter:   google.NewRateLimiter(google.ServicePeople),
		photoLimiter:  google.NewRateLimiter(google.ServicePhotos),
	}
}

// Type returns the store type identifier.
func (s *Store) Type() string {
	return domain.StoreTypeGoogle
}

// RequestAccess probes the API with the current token. Missing credentials
// or a rejected token mean access is denied; other failures are errors.
func (s *Store) RequestAccess(ctx context.Context) (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	if s.tokenProvider == nil || !s.tokenProvider.IsAuthenticated() {
		logger.Debug("google: no credentials available")
		return false, nil
	}

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return false, err
	}

	_, err := s.service.People.Get(MeResourceName).
		PersonFields("metadata").
		Context(ctx).
		Do()
	if err != nil {
		if google.IsUnauthorized(err) || google.IsForbidden(err) {
			logger.Debug("google: access probe rejected: %v", err)
			return false, nil
		}
		return false, google.WrapError(err)
	}

	return true, nil
}

// DefaultContainerID returns the authenticated user's connections.
func (s *Store) DefaultContainerID(_ context.Context) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	return MeResourceName, nil
}

// UnifiedContacts lists every connection of the container, paging
// internally, and converts each person into a contact.
func (s *Store) UnifiedContacts(ctx context.Context, containerID string, keys []domain.FieldKey) ([]domain.Contact, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	mask := personFieldMask(keys)
	wantPhotos := s.config.FetchPhotos && containsKey(keys, domain.FieldImageData)
	logger.Debug("google: listing %s with personFields=%s", containerID, mask)

	var contacts []domain.Contact
	pageToken := ""
	for {
		resp, err := s.listPage(ctx, containerID, mask, pageToken)
		if err != nil {
			return nil, err
		}

		for _, person := range resp.Connections {
			if person == nil {
				continue
			}
			var photo []byte
			if wantPhotos {
				photo = s.downloadPhoto(ctx, PhotoURL(person))
			}
			contacts = append(contacts, PersonToContact(person, keys, photo))
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return contacts, nil
}

// listPage fetches one page of connections behind the rate limiter.
func (s *Store) listPage(ctx context.Context, containerID, mask, pageToken string) (*peopleapi.ListConnectionsResponse, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := s.service.People.Connections.List(containerID).
		PersonFields(mask).
		PageSize(s.config.PageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		if google.IsRateLimited(err) {
			s.rateLimiter.RecordRateLimitError(google.RetryAfter(err))
		}
		return nil, fmt.Errorf("list connections: %w", google.WrapError(err))
	}
	return resp, nil
}

// downloadPhoto fetches a photo. Failures are logged and yield nil so a
// missing image never fails the whole fetch.
func (s *Store) downloadPhoto(ctx context.Context, url string) []byte {
	if url == "" || s.httpClient == nil {
		return nil
	}
	if err := s.photoLimiter.Wait(ctx); err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		logger.Debug("google: photo request: %v", err)
		return nil
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Debug("google: photo download: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("google: photo download returned status %d", resp.StatusCode)
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes+1))
	if err != nil {
		logger.Debug("google: photo read: %v", err)
		return nil
	}
	if len(data) > maxPhotoBytes {
		logger.Warn("google: photo larger than %d bytes skipped", maxPhotoBytes)
		return nil
	}
	return data
}

// Close marks the store closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	return nil
}

func containsKey(keys []domain.FieldKey, want domain.FieldKey) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}
