// Package storefactory builds contact stores from source configuration.
package storefactory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/addrbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/addrbook/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/addrbook/internal/connectors/google/people"
	"github.com/custodia-labs/addrbook/internal/connectors/vcard"
	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.StoreFactory = (*Factory)(nil)

// TokenProviderFactory supplies the token provider a source authenticates with.
type TokenProviderFactory interface {
	CreateTokenProvider(source domain.Source) driven.TokenProvider
}

// Factory creates contact stores by type.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]driven.StoreBuilder
	tokens   TokenProviderFactory
}

// New creates a factory with the built-in store types registered.
// tokens may be nil, in which case stores are built without authentication.
func New(tokens TokenProviderFactory) *Factory {
	f := &Factory{
		builders: make(map[string]driven.StoreBuilder),
		tokens:   tokens,
	}
	f.Register(domain.StoreTypeGoogle, buildGoogle)
	f.Register(domain.StoreTypeSQLite, buildSQLite)
	f.Register(domain.StoreTypeVCard, buildVCard)
	f.Register(domain.StoreTypeMemory, buildMemory)
	return f
}

// Create returns a ContactStore for the given source.
func (f *Factory) Create(ctx context.Context, source domain.Source) (driven.ContactStore, error) {
	f.mu.RLock()
	builder, ok := f.builders[source.Type]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: store %q", domain.ErrUnsupportedType, source.Type)
	}

	var tp driven.TokenProvider
	if f.tokens != nil {
		tp = f.tokens.CreateTokenProvider(source)
	}
	return builder(ctx, source, tp)
}

// Register adds a store builder, replacing any existing one for the type.
func (f *Factory) Register(storeType string, builder driven.StoreBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[storeType] = builder
}

// SupportedTypes returns all registered store types, sorted.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func buildGoogle(ctx context.Context, source domain.Source, tp driven.TokenProvider) (driven.ContactStore, error) {
	cfg, err := people.ParseConfig(source)
	if err != nil {
		return nil, err
	}
	return people.New(ctx, tp, cfg)
}

func buildSQLite(_ context.Context, source domain.Source, _ driven.TokenProvider) (driven.ContactStore, error) {
	path := source.ConfigValue("path", "")
	if path == "" {
		def, err := sqlite.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = def
	}
	return sqlite.NewContactStore(path), nil
}

func buildVCard(_ context.Context, source domain.Source, _ driven.TokenProvider) (driven.ContactStore, error) {
	path := source.ConfigValue("path", "")
	if path == "" {
		return nil, fmt.Errorf("%w: vcard store needs a directory path", domain.ErrInvalidInput)
	}
	return vcard.NewStore(path), nil
}

func buildMemory(_ context.Context, _ domain.Source, _ driven.TokenProvider) (driven.ContactStore, error) {
	return memory.NewContactStore(), nil
}
