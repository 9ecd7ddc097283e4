package mcp

import (
	"github.com/custodia-labs/addrbook/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Contacts fetches flattened contact records.
	Contacts driving.ContactService

	// Fields describes the requestable fields.
	Fields driving.FieldCatalog
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Contacts == nil {
		return ErrMissingContactService
	}
	// Fields is optional; the fields resources list nothing without it
	return nil
}
