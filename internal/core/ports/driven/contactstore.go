package driven

import (
	"context"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// ContactStore reads contacts from an address book.
// Each store type (google, sqlite, vcard, memory) implements this interface.
// Stores are read-only and safe for concurrent reads.
type ContactStore interface {
	// Type returns the store type identifier.
	Type() string

	// RequestAccess asks for permission to read the address book.
	// Returns false with a nil error when the user or provider refused access.
	// A non-nil error means access could not be determined.
	RequestAccess(ctx context.Context) (bool, error)

	// DefaultContainerID returns the identifier of the default container
	// (account, database, directory) that fetches read from.
	DefaultContainerID(ctx context.Context) (string, error)

	// UnifiedContacts returns every contact in the container, with values
	// loaded for the requested keys. Keys the store does not know are
	// ignored. Order is the store's iteration order.
	UnifiedContacts(ctx context.Context, containerID string, keys []domain.FieldKey) ([]domain.Contact, error)

	// Close releases resources.
	Close() error
}

// ContactSink persists native contacts, used to snapshot a store into a
// local address book.
type ContactSink interface {
	// ReplaceContacts replaces every contact of the container.
	ReplaceContacts(ctx context.Context, containerID string, contacts []domain.Contact) error

	// Close releases resources.
	Close() error
}
