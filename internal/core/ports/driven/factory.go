package driven

import (
	"context"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// StoreBuilder creates a ContactStore from a Source.
// TokenProvider may be nil for stores that don't require authentication.
type StoreBuilder func(ctx context.Context, source domain.Source, tokenProvider TokenProvider) (ContactStore, error)

// StoreFactory creates contact stores from source configuration.
// It maintains a registry of store types and their builders.
type StoreFactory interface {
	// Create returns a ContactStore for the given source.
	// Returns ErrUnsupportedType if the source type is unknown.
	Create(ctx context.Context, source domain.Source) (ContactStore, error)

	// Register adds a store builder for the given type.
	Register(storeType string, builder StoreBuilder)

	// SupportedTypes returns all registered store types, sorted.
	SupportedTypes() []string
}
