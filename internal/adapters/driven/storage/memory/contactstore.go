package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
)

// DefaultContainerID is the only container an in-memory store has.
const DefaultContainerID = "memory"

// Ensure ContactStore implements the interface.
var _ driven.ContactStore = (*ContactStore)(nil)

// ContactStore is an in-memory implementation of driven.ContactStore.
// Access decisions and failures are configurable so it can stand in for a
// real address book.
type ContactStore struct {
	mu        sync.RWMutex
	contacts  []domain.Contact
	granted   bool
	accessErr error
	queryErr  error
	closed    bool
}

// NewContactStore creates an in-memory store that grants access and holds
// the given contacts.
func NewContactStore(contacts ...domain.Contact) *ContactStore {
	return &ContactStore{
		contacts: contacts,
		granted:  true,
	}
}

// Type returns the store type identifier.
func (s *ContactStore) Type() string {
	return domain.StoreTypeMemory
}

// SetGranted controls the answer to RequestAccess.
func (s *ContactStore) SetGranted(granted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.granted = granted
}

// SetAccessError makes RequestAccess fail with err.
func (s *ContactStore) SetAccessError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessErr = err
}

// SetQueryError makes UnifiedContacts fail with err.
func (s *ContactStore) SetQueryError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryErr = err
}

// Add appends contacts to the store.
func (s *ContactStore) Add(contacts ...domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append(s.contacts, contacts...)
}

// RequestAccess returns the configured access decision.
func (s *ContactStore) RequestAccess(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, domain.ErrStoreClosed
	}
	if s.accessErr != nil {
		return false, s.accessErr
	}
	return s.granted, nil
}

// DefaultContainerID returns the fixed container identifier.
func (s *ContactStore) DefaultContainerID(_ context.Context) (string, error) {
	return DefaultContainerID, nil
}

// UnifiedContacts returns the stored contacts restricted to the requested keys.
func (s *ContactStore) UnifiedContacts(
	_ context.Context,
	containerID string,
	keys []domain.FieldKey,
) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if containerID != DefaultContainerID {
		return nil, domain.ErrNotFound
	}

	result := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out := domain.NewContact(c.ID)
		for _, k := range keys {
			if v, ok := c.Value(k); ok {
				out.Set(k, v)
			}
		}
		result = append(result, out)
	}
	return result, nil
}

// Close marks the store closed.
func (s *ContactStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
