package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for addrbook resources.
	uriScheme = "addrbook://"
)

// fieldInfo is the JSON shape of one requestable field.
type fieldInfo struct {
	Key         string `json:"key"`
	Default     bool   `json:"default"`
	Description string `json:"description"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "fields",
		Name:        "fields",
		Description: "Contact fields that fetch_contacts can return",
		MIMEType:    "application/json",
	}, s.handleFieldsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "fields/{key}",
		Name:        "field",
		Description: "Description of a single contact field",
		MIMEType:    "application/json",
	}, s.handleFieldResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "contacts",
		Name:        "contacts",
		Description: "Contacts with the default field set, as {success, records}",
		MIMEType:    "application/json",
	}, s.handleContactsResource)
}

// handleFieldsResource lists every known field.
func (s *Server) handleFieldsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, s.fieldInfos())
}

// handleFieldResource describes the field named in the URI.
func (s *Server) handleFieldResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	key := extractFieldKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	for _, info := range s.fieldInfos() {
		if info.Key == key {
			return jsonResult(req.Params.URI, info)
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// handleContactsResource fetches contacts with the default fields.
func (s *Server) handleContactsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, s.ports.Contacts.FetchDefault(ctx))
}

func (s *Server) fieldInfos() []fieldInfo {
	if s.ports.Fields == nil {
		return []fieldInfo{}
	}

	fields := s.ports.Fields.Fields()
	infos := make([]fieldInfo, len(fields))
	for i, f := range fields {
		infos[i] = fieldInfo{
			Key:         string(f.Key),
			Default:     f.Default,
			Description: f.Description,
		}
	}
	return infos
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractFieldKey extracts the key from a URI like addrbook://fields/{key}.
func extractFieldKey(uri string) string {
	const prefix = uriScheme + "fields/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	key := strings.TrimPrefix(uri, prefix)
	if key == "" || !domain.FieldKey(key).IsKnown() {
		return ""
	}
	return key
}
