package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/core/ports/driving"
	"github.com/custodia-labs/addrbook/internal/logger"
)

// Ensure ContactService implements the interface.
var _ driving.ContactService = (*ContactService)(nil)

// ContactService reads contacts from a store and flattens them into records.
// It holds no mutable state; concurrent fetches run independently.
type ContactService struct {
	store      driven.ContactStore
	normaliser driven.FieldNormaliser
}

// NewContactService creates a contact service over the given store.
func NewContactService(store driven.ContactStore, normaliser driven.FieldNormaliser) *ContactService {
	return &ContactService{
		store:      store,
		normaliser: normaliser,
	}
}

// Fetch reads every contact in the default container and flattens the
// requested fields. Denied access and query failures both yield a failed
// result with no records.
func (s *ContactService) Fetch(ctx context.Context, fields []domain.FieldKey) (result domain.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("error while retrieving contacts: %v", r)
			result = domain.FailedFetch()
		}
	}()

	if s.store == nil || s.normaliser == nil {
		logger.Warn("contact service not configured")
		return domain.FailedFetch()
	}

	logger.Section("Fetch")
	logger.Debug("Store: %s, fields: %v", s.store.Type(), fields)

	granted, err := s.store.RequestAccess(ctx)
	if err != nil || !granted {
		if err != nil {
			logger.Warn("cannot have access to user contacts: %v", err)
		} else {
			logger.Warn("cannot have access to user contacts")
		}
		return domain.FailedFetch()
	}

	contacts, err := s.query(ctx, fields)
	if err != nil {
		logger.Warn("error while retrieving contacts: %v", err)
		return domain.FailedFetch()
	}

	records := make([]domain.Record, 0, len(contacts))
	for i := range contacts {
		records = append(records, s.flatten(&contacts[i], fields))
	}

	logger.Info("Fetched %d contacts from %s", len(records), s.store.Type())
	return domain.FetchResult{Success: true, Records: records}
}

// FetchDefault is Fetch with the default field set.
func (s *ContactService) FetchDefault(ctx context.Context) domain.FetchResult {
	return s.Fetch(ctx, domain.DefaultFieldKeys())
}

// FetchAsync runs Fetch on its own goroutine.
// The returned channel receives exactly one result and is then closed.
func (s *ContactService) FetchAsync(ctx context.Context, fields []domain.FieldKey) <-chan domain.FetchResult {
	done := make(chan domain.FetchResult, 1)
	keys := make([]domain.FieldKey, len(fields))
	copy(keys, fields)

	go func() {
		defer close(done)
		done <- s.Fetch(ctx, keys)
	}()

	return done
}

// query resolves the default container and loads its contacts.
func (s *ContactService) query(ctx context.Context, fields []domain.FieldKey) ([]domain.Contact, error) {
	containerID, err := s.store.DefaultContainerID(ctx)
	if err != nil {
		return nil, fmt.Errorf("default container: %w", err)
	}

	contacts, err := s.store.UnifiedContacts(ctx, containerID, fields)
	if err != nil {
		return nil, fmt.Errorf("unified contacts: %w", err)
	}
	return contacts, nil
}

// flatten builds the record for one contact. Fields without a value, or
// whose value cannot be normalised, are left out.
func (s *ContactService) flatten(contact *domain.Contact, fields []domain.FieldKey) domain.Record {
	record := make(domain.Record, len(fields))
	for _, key := range fields {
		value, ok := contact.Value(key)
		if !ok {
			continue
		}
		if normalised, ok := s.normaliser.Normalise(value); ok {
			record[string(key)] = normalised
		}
	}
	return record
}
