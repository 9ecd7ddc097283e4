package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/addrbook/internal/adapters/driven/auth"
	"github.com/custodia-labs/addrbook/internal/adapters/driven/config/file"
	"github.com/custodia-labs/addrbook/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/addrbook/internal/adapters/driven/storefactory"
	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/core/services"
	"github.com/custodia-labs/addrbook/internal/logger"
	"github.com/custodia-labs/addrbook/internal/normalisers/field"
)

// Config keys read by the CLI.
const (
	keyStoreType   = "store.type"
	keyStoreFields = "store.fields"
)

// vcardDirName is the vCard directory inside the config directory.
const vcardDirName = "vcards"

// openStore builds the contact store for a source. Tests replace it.
var openStore = func(ctx context.Context, dir string, source domain.Source) (driven.ContactStore, error) {
	return storefactory.New(auth.NewFactory(dir)).Create(ctx, source)
}

// session is the configured store and the services built over it.
type session struct {
	configDir string
	config    *file.ConfigStore
	source    domain.Source
	store     driven.ContactStore
	contacts  *services.ContactService
	fields    []domain.FieldKey
}

// Close releases the store.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		logger.Warn("closing %s store: %v", s.source.Type, err)
	}
}

// loadConfig opens the config store named by --config-dir.
func loadConfig() (*file.ConfigStore, string, error) {
	dir := configDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, "", fmt.Errorf("resolving config directory: %w", err)
		}
		dir = d
	}

	cfg, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, dir, nil
}

// openSession resolves the configured store and opens it.
func openSession(ctx context.Context) (*session, error) {
	cfg, dir, err := loadConfig()
	if err != nil {
		return nil, err
	}

	source := resolveSource(cfg, dir)
	logger.Debug("store %s %v", source.Type, source.Config)

	store, err := openStore(ctx, dir, source)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", source.Type, err)
	}

	return &session{
		configDir: dir,
		config:    cfg,
		source:    source,
		store:     store,
		contacts:  services.NewContactService(store, field.New()),
		fields:    requestedFields(cfg),
	}, nil
}

// resolveSource picks the store type from --store, then store.type, then
// vcard. Keys under "<type>." become the source config and --path wins over
// the configured path.
func resolveSource(cfg driven.ConfigStore, dir string) domain.Source {
	storeType := storeFlag
	if storeType == "" {
		storeType = cfg.GetString(keyStoreType)
	}
	if storeType == "" {
		storeType = domain.StoreTypeVCard
	}
	return sourceFor(cfg, dir, storeType)
}

// sourceFor builds the source of one store type from its config section.
func sourceFor(cfg driven.ConfigStore, dir, storeType string) domain.Source {
	conf := make(map[string]string)
	prefix := storeType + "."
	for _, k := range cfg.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		v, _ := cfg.Get(k)
		conf[strings.TrimPrefix(k, prefix)] = configString(v)
	}

	if pathFlag != "" {
		conf["path"] = pathFlag
	}
	if conf["path"] == "" {
		switch storeType {
		case domain.StoreTypeVCard:
			conf["path"] = filepath.Join(dir, vcardDirName)
		case domain.StoreTypeSQLite:
			conf["path"] = filepath.Join(dir, sqlite.DefaultFileName)
		}
	}

	return domain.Source{Type: storeType, Config: conf}
}

// requestedFields returns --fields, then store.fields, then the default set.
// A list that names no keys counts as unset.
func requestedFields(cfg driven.ConfigStore) []domain.FieldKey {
	if keys := domain.ParseFieldKeys(splitList(fieldsFlag)); len(keys) > 0 {
		return keys
	}
	if keys := domain.ParseFieldKeys(cfg.GetStringSlice(keyStoreFields)); len(keys) > 0 {
		return keys
	}
	return domain.DefaultFieldKeys()
}

// configString renders a config value for a source config map.
func configString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
