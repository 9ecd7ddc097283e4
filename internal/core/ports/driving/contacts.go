package driving

import (
	"context"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// ContactService fetches and flattens contacts from the configured store.
// None of its methods return an error: failure is reported through
// FetchResult.Success.
type ContactService interface {
	// Fetch reads every contact in the default container and flattens the
	// requested fields. Blocks until the store has answered.
	Fetch(ctx context.Context, fields []domain.FieldKey) domain.FetchResult

	// FetchDefault is Fetch with the default field set.
	FetchDefault(ctx context.Context) domain.FetchResult

	// FetchAsync starts a fetch in the background. The returned channel
	// delivers exactly one result and is then closed.
	FetchAsync(ctx context.Context, fields []domain.FieldKey) <-chan domain.FetchResult
}

// FieldCatalog describes the field keys callers can request.
type FieldCatalog interface {
	// Fields returns every known field with its default flag.
	Fields() []FieldInfo
}

// FieldInfo describes one requestable field.
type FieldInfo struct {
	// Key is the field identifier.
	Key domain.FieldKey

	// Default is true when the field is part of the default set.
	Default bool

	// Description is a short human-readable description.
	Description string
}

// SnapshotService copies the native contacts of a store into a local sink.
type SnapshotService interface {
	// Snapshot copies the default container's contacts with the given fields
	// loaded (every known field when empty) and returns how many were written.
	Snapshot(ctx context.Context, fields []domain.FieldKey) (int, error)
}
