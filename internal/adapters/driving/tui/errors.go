package tui

import "errors"

// ErrMissingContactService is returned when the contact service is not provided.
var ErrMissingContactService = errors.New("tui: contact service is required")
