package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractFieldKey(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "known field",
			uri:      "addrbook://fields/givenName",
			expected: "givenName",
		},
		{
			name:     "unknown field",
			uri:      "addrbook://fields/shoeSize",
			expected: "",
		},
		{
			name:     "invalid prefix",
			uri:      "file://fields/givenName",
			expected: "",
		},
		{
			name:     "missing key",
			uri:      "addrbook://fields/",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractFieldKey(tt.uri))
		})
	}
}

func TestServer_handleFieldsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists fields", func(t *testing.T) {
		server, err := NewServer(&Ports{Contacts: &mockContactService{}, Fields: testCatalog()})
		require.NoError(t, err)

		result, err := server.handleFieldsResource(ctx, readRequest("addrbook://fields"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []fieldInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		assert.Equal(t, []fieldInfo{
			{Key: "givenName", Default: true, Description: "Given (first) name"},
			{Key: "note", Description: "Free-form note"},
		}, infos)
	})

	t.Run("no catalog lists nothing", func(t *testing.T) {
		server, err := NewServer(&Ports{Contacts: &mockContactService{}})
		require.NoError(t, err)

		result, err := server.handleFieldsResource(ctx, readRequest("addrbook://fields"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleFieldResource(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Contacts: &mockContactService{}, Fields: testCatalog()})
	require.NoError(t, err)

	t.Run("known field", func(t *testing.T) {
		result, err := server.handleFieldResource(ctx, readRequest("addrbook://fields/note"))

		require.NoError(t, err)
		var info fieldInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
		assert.Equal(t, "note", info.Key)
		assert.False(t, info.Default)
	})

	t.Run("field missing from catalog", func(t *testing.T) {
		_, err := server.handleFieldResource(ctx, readRequest("addrbook://fields/jobTitle"))
		require.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := server.handleFieldResource(ctx, readRequest("addrbook://fields/shoeSize"))
		require.Error(t, err)
	})
}

func TestServer_handleContactsResource(t *testing.T) {
	contacts := &mockContactService{result: domain.FetchResult{
		Success: true,
		Records: []domain.Record{{"givenName": domain.NormalizedText("Ada")}},
	}}
	server, err := NewServer(&Ports{Contacts: contacts})
	require.NoError(t, err)

	result, err := server.handleContactsResource(context.Background(), readRequest("addrbook://contacts"))

	require.NoError(t, err)
	assert.Equal(t, 1, contacts.defaultCalls)
	assert.JSONEq(t, `{"success": true, "records": [{"givenName": "Ada"}]}`, result.Contents[0].Text)
}
