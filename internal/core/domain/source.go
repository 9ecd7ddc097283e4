package domain

// Store types understood by the store factory.
const (
	StoreTypeGoogle = "google"
	StoreTypeSQLite = "sqlite"
	StoreTypeVCard  = "vcard"
	StoreTypeMemory = "memory"
)

// Source describes a configured contact store.
type Source struct {
	// Type identifies the store implementation (e.g., "vcard", "google").
	Type string

	// Config contains store-specific configuration.
	Config map[string]string
}

// ConfigValue returns a configuration value, or def when unset.
func (s Source) ConfigValue(key, def string) string {
	if s.Config == nil {
		return def
	}
	if v, ok := s.Config[key]; ok && v != "" {
		return v
	}
	return def
}
