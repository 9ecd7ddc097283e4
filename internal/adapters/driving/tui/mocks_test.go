package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

// MockContactService is a mock implementation of driving.ContactService.
type MockContactService struct {
	mu        sync.Mutex
	Result    domain.FetchResult
	GotFields []domain.FieldKey
	Calls     int
}

func (m *MockContactService) Fetch(_ context.Context, fields []domain.FieldKey) domain.FetchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.GotFields = fields
	return m.Result
}

func (m *MockContactService) FetchDefault(ctx context.Context) domain.FetchResult {
	return m.Fetch(ctx, domain.DefaultFieldKeys())
}

func (m *MockContactService) FetchAsync(ctx context.Context, fields []domain.FieldKey) <-chan domain.FetchResult {
	ch := make(chan domain.FetchResult, 1)
	ch <- m.Fetch(ctx, fields)
	close(ch)
	return ch
}

func testRecords() []domain.Record {
	return []domain.Record{
		{
			"givenName":      domain.NormalizedText("Ada"),
			"familyName":     domain.NormalizedText("Lovelace"),
			"emailAddresses": domain.NormalizedList{domain.NormalizedText("ada@example.com")},
			"imageData":      domain.NormalizedText("/9j/"),
		},
		{
			"givenName":  domain.NormalizedText("Alan"),
			"familyName": domain.NormalizedText("Turing"),
		},
		{
			"givenName":  domain.NormalizedText("Grace"),
			"familyName": domain.NormalizedText("Hopper"),
		},
	}
}
