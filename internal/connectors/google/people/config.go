package people

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// Config holds Google People store configuration.
type Config struct {
	// PageSize is the number of connections requested per page (max 1000).
	PageSize int64
	// FetchPhotos downloads contact photos for the imageData field.
	FetchPhotos bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PageSize:    500,
		FetchPhotos: true,
	}
}

// ParseConfig extracts configuration from a Source.
func ParseConfig(source domain.Source) (*Config, error) {
	cfg := DefaultConfig()

	if val := source.Config["page_size"]; val != "" {
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil || n <= 0 || n > 1000 {
			return nil, fmt.Errorf("%w: page_size must be between 1 and 1000, got %q", domain.ErrInvalidInput, val)
		}
		cfg.PageSize = n
	}

	if val := source.Config["fetch_photos"]; val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch_photos: %q", domain.ErrInvalidInput, val)
		}
		cfg.FetchPhotos = b
	}

	return cfg, nil
}
