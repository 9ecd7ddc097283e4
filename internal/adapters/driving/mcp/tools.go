package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// FetchContactsInput is the input schema for the fetch_contacts tool.
type FetchContactsInput struct {
	Fields []string `json:"fields,omitempty" jsonschema:"contact fields to return (default: familyName, givenName, emailAddresses, postalAddresses, imageData, phoneNumbers)"`
}

// FetchContactsOutput is the output schema for the fetch_contacts tool.
type FetchContactsOutput struct {
	Success bool             `json:"success"`
	Records []map[string]any `json:"records"`
	Count   int              `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "fetch_contacts",
		Description: "Fetch the user's contacts as flat records. " +
			"success is false when access to the address book was denied or the query failed.",
	}, s.handleFetchContacts)
}

// handleFetchContacts handles the fetch_contacts tool invocation.
// A failed fetch is reported in the output, never as a tool error.
func (s *Server) handleFetchContacts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchContactsInput,
) (*mcp.CallToolResult, FetchContactsOutput, error) {
	var result domain.FetchResult
	if len(input.Fields) == 0 {
		result = s.ports.Contacts.FetchDefault(ctx)
	} else {
		result = s.ports.Contacts.Fetch(ctx, domain.ParseFieldKeys(input.Fields))
	}

	return nil, toOutput(result), nil
}

func toOutput(result domain.FetchResult) FetchContactsOutput {
	output := FetchContactsOutput{
		Success: result.Success,
		Records: make([]map[string]any, len(result.Records)),
		Count:   len(result.Records),
	}
	for i, record := range result.Records {
		plain := make(map[string]any, len(record))
		for k, v := range record {
			plain[k] = domain.Plain(v)
		}
		output.Records[i] = plain
	}
	return output
}
