// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// ContactsRequested starts a fetch.
type ContactsRequested struct{}

// ContactsLoaded carries a finished fetch back to the model.
type ContactsLoaded struct {
	Result domain.FetchResult
}

// FilterChanged is sent when the filter text changes.
type FilterChanged struct {
	Filter string
}

// ContactSelected is sent when the highlighted contact changes.
type ContactSelected struct {
	Index int
}
