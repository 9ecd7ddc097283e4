// Package mcp provides an MCP (Model Context Protocol) server adapter for addrbook.
// It lets AI assistants fetch the user's contacts as flat records.
package mcp

import "errors"

// ErrMissingContactService is returned when the contact service is not provided.
var ErrMissingContactService = errors.New("mcp: contact service is required")
