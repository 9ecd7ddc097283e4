package auth

import (
	"path/filepath"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
)

// DefaultTokenFile is the token file name used when a source sets none.
const DefaultTokenFile = "google-token.json"

// Factory creates TokenProviders for sources.
type Factory struct {
	configDir string
}

// NewFactory creates a token provider factory. Relative token file paths
// are resolved against configDir.
func NewFactory(configDir string) *Factory {
	return &Factory{configDir: configDir}
}

// CreateTokenProvider returns the TokenProvider a source needs.
// Only Google sources authenticate; every other store gets a NullTokenProvider.
func (f *Factory) CreateTokenProvider(source domain.Source) driven.TokenProvider {
	if source.Type != domain.StoreTypeGoogle {
		return NewNullTokenProvider()
	}

	cfg := GoogleOAuthConfig(
		source.ConfigValue("client_id", ""),
		source.ConfigValue("client_secret", ""),
		"",
	)
	return NewTokenFileProvider(f.TokenPath(source), cfg)
}

// TokenPath resolves the token file of a Google source.
func (f *Factory) TokenPath(source domain.Source) string {
	path := source.ConfigValue("token_file", DefaultTokenFile)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.configDir, path)
}
