package mcp

import (
	"context"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driving"
)

// mockContactService is a mock implementation of driving.ContactService.
type mockContactService struct {
	result       domain.FetchResult
	gotFields    []domain.FieldKey
	defaultCalls int
}

func (m *mockContactService) Fetch(_ context.Context, fields []domain.FieldKey) domain.FetchResult {
	m.gotFields = fields
	return m.result
}

func (m *mockContactService) FetchDefault(_ context.Context) domain.FetchResult {
	m.defaultCalls++
	return m.result
}

func (m *mockContactService) FetchAsync(ctx context.Context, fields []domain.FieldKey) <-chan domain.FetchResult {
	ch := make(chan domain.FetchResult, 1)
	ch <- m.Fetch(ctx, fields)
	close(ch)
	return ch
}

// mockFieldCatalog is a mock implementation of driving.FieldCatalog.
type mockFieldCatalog struct {
	fields []driving.FieldInfo
}

func (m *mockFieldCatalog) Fields() []driving.FieldInfo {
	return m.fields
}

func testCatalog() *mockFieldCatalog {
	return &mockFieldCatalog{fields: []driving.FieldInfo{
		{Key: domain.FieldGivenName, Default: true, Description: "Given (first) name"},
		{Key: domain.FieldNote, Description: "Free-form note"},
	}}
}
