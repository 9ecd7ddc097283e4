// Package tui provides an interactive terminal browser for the address book.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driving"
)

// Ports aggregates the driving ports and settings required by the TUI.
type Ports struct {
	// Contacts fetches flattened contact records.
	Contacts driving.ContactService

	// Fields is the field set to fetch. Empty means the default set.
	Fields []domain.FieldKey

	// StoreName labels the status bar (e.g. "vcard").
	StoreName string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Contacts == nil {
		return ErrMissingContactService
	}
	return nil
}
