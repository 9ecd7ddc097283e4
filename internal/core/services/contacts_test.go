package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/addrbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/logger"
	"github.com/custodia-labs/addrbook/internal/normalisers/field"
)

// panickingStore implements driven.ContactStore and panics on query.
type panickingStore struct{}

func (panickingStore) Type() string { return "panicking" }

func (panickingStore) RequestAccess(_ context.Context) (bool, error) { return true, nil }

func (panickingStore) DefaultContainerID(_ context.Context) (string, error) { return "c", nil }

func (panickingStore) UnifiedContacts(_ context.Context, _ string, _ []domain.FieldKey) ([]domain.Contact, error) {
	panic("store blew up")
}

func (panickingStore) Close() error { return nil }

// containerErrorStore fails to resolve its default container.
type containerErrorStore struct {
	*memory.ContactStore
}

func (containerErrorStore) DefaultContainerID(_ context.Context) (string, error) {
	return "", errors.New("no default container")
}

// countingStore records how many queries it served.
type countingStore struct {
	*memory.ContactStore
	mu      sync.Mutex
	queries int
}

func (s *countingStore) UnifiedContacts(ctx context.Context, id string, keys []domain.FieldKey) ([]domain.Contact, error) {
	s.mu.Lock()
	s.queries++
	s.mu.Unlock()
	return s.ContactStore.UnifiedContacts(ctx, id, keys)
}

func newService(store driven.ContactStore) *ContactService {
	return NewContactService(store, field.New())
}

func contactWithBirthday(id, given string) domain.Contact {
	c := domain.NewContact(id)
	c.Set(domain.FieldGivenName, domain.Text(given))
	c.Set(domain.FieldBirthday, domain.Label("birthday", domain.DateComponents{Month: 5, Day: 4}))
	return c
}

func TestContactService_AccessDenied(t *testing.T) {
	store := memory.NewContactStore(contactWithBirthday("1", "Ada"))
	store.SetGranted(false)

	result := newService(store).Fetch(context.Background(), domain.DefaultFieldKeys())

	assert.False(t, result.Success)
	require.NotNil(t, result.Records)
	assert.Empty(t, result.Records)
}

func TestContactService_AccessError(t *testing.T) {
	store := memory.NewContactStore(contactWithBirthday("1", "Ada"))
	store.SetAccessError(errors.New("prompt dismissed"))

	result := newService(store).Fetch(context.Background(), domain.DefaultFieldKeys())

	assert.Equal(t, domain.FailedFetch(), result)
}

func TestContactService_QueryFailure(t *testing.T) {
	store := memory.NewContactStore(contactWithBirthday("1", "Ada"))
	store.SetQueryError(domain.ErrStoreUnavailable)

	result := newService(store).Fetch(context.Background(), domain.DefaultFieldKeys())

	assert.Equal(t, domain.FailedFetch(), result)
}

func TestContactService_ContainerFailure(t *testing.T) {
	store := containerErrorStore{memory.NewContactStore(contactWithBirthday("1", "Ada"))}

	result := newService(store).Fetch(context.Background(), domain.DefaultFieldKeys())

	assert.Equal(t, domain.FailedFetch(), result)
}

func TestContactService_StorePanicIsReportedAsFailure(t *testing.T) {
	result := newService(panickingStore{}).Fetch(context.Background(), domain.DefaultFieldKeys())

	assert.Equal(t, domain.FailedFetch(), result)
}

func TestContactService_NotConfigured(t *testing.T) {
	result := NewContactService(nil, nil).Fetch(context.Background(), domain.DefaultFieldKeys())

	assert.Equal(t, domain.FailedFetch(), result)
}

func TestContactService_OmitsUnnormalisableFields(t *testing.T) {
	store := memory.NewContactStore(
		contactWithBirthday("1", "Ada"),
		contactWithBirthday("2", "Alan"),
	)
	fields := []domain.FieldKey{domain.FieldGivenName, domain.FieldBirthday}

	result := newService(store).Fetch(context.Background(), fields)

	require.True(t, result.Success)
	require.Len(t, result.Records, 2)
	assert.Equal(t, domain.Record{"givenName": domain.NormalizedText("Ada")}, result.Records[0])
	assert.Equal(t, domain.Record{"givenName": domain.NormalizedText("Alan")}, result.Records[1])
	for _, r := range result.Records {
		assert.NotContains(t, r, "birthday")
	}
}

func TestContactService_RecordKeysAreSubsetOfRequested(t *testing.T) {
	c := domain.NewContact("1")
	c.Set(domain.FieldGivenName, domain.Text("Ada"))
	c.Set(domain.FieldFamilyName, domain.Text("Lovelace"))
	c.Set(domain.FieldNote, domain.Text("not requested"))
	store := memory.NewContactStore(c)

	result := newService(store).Fetch(context.Background(), []domain.FieldKey{domain.FieldFamilyName, domain.FieldNickname})

	require.True(t, result.Success)
	require.Len(t, result.Records, 1)
	assert.Equal(t, domain.Record{"familyName": domain.NormalizedText("Lovelace")}, result.Records[0])
}

func TestContactService_FullContact(t *testing.T) {
	photo := []byte{0xff, 0xd8, 0xff}
	c := domain.NewContact("1")
	c.Set(domain.FieldGivenName, domain.Text("Ada"))
	c.Set(domain.FieldFamilyName, domain.Text("Lovelace"))
	c.Set(domain.FieldEmailAddresses, domain.Sequence{
		domain.Label("home", domain.Text("ada@example.com")),
	})
	c.Set(domain.FieldPostalAddresses, domain.Sequence{
		domain.Label("home", domain.PostalAddress{City: "London", Country: "UK"}),
	})
	c.Set(domain.FieldPhoneNumbers, domain.Sequence{
		domain.Label("mobile", domain.PhoneNumber{StringValue: "+44 20 7946 0000"}),
	})
	c.Set(domain.FieldImageData, domain.Blob(photo))
	store := memory.NewContactStore(c)

	result := newService(store).FetchDefault(context.Background())

	require.True(t, result.Success)
	require.Len(t, result.Records, 1)
	assert.Equal(t, domain.Record{
		"givenName":  domain.NormalizedText("Ada"),
		"familyName": domain.NormalizedText("Lovelace"),
		"emailAddresses": domain.NormalizedList{
			domain.NormalizedText("ada@example.com"),
		},
		"postalAddresses": domain.NormalizedList{
			domain.NormalizedMap{"state": "", "country": "UK", "city": "London", "street": "", "postalCode": ""},
		},
		"phoneNumbers": domain.NormalizedList{
			domain.NormalizedText("+44 20 7946 0000"),
		},
		"imageData": domain.NormalizedText("/9j/"),
	}, result.Records[0])
}

func TestContactService_EmptyFieldsYieldEmptyRecords(t *testing.T) {
	store := memory.NewContactStore(contactWithBirthday("1", "Ada"))

	result := newService(store).Fetch(context.Background(), nil)

	require.True(t, result.Success)
	require.Len(t, result.Records, 1)
	assert.NotNil(t, result.Records[0])
	assert.Empty(t, result.Records[0])
}

func TestContactService_NoContacts(t *testing.T) {
	result := newService(memory.NewContactStore()).FetchDefault(context.Background())

	assert.True(t, result.Success)
	assert.NotNil(t, result.Records)
	assert.Empty(t, result.Records)
}

func TestContactService_PreservesStoreOrder(t *testing.T) {
	store := memory.NewContactStore(
		contactWithBirthday("z", "Zed"),
		contactWithBirthday("a", "Abe"),
		contactWithBirthday("m", "Max"),
	)

	result := newService(store).Fetch(context.Background(), []domain.FieldKey{domain.FieldGivenName})

	require.Len(t, result.Records, 3)
	assert.Equal(t, domain.NormalizedText("Zed"), result.Records[0]["givenName"])
	assert.Equal(t, domain.NormalizedText("Abe"), result.Records[1]["givenName"])
	assert.Equal(t, domain.NormalizedText("Max"), result.Records[2]["givenName"])
}

func TestContactService_FetchAsync(t *testing.T) {
	store := memory.NewContactStore(contactWithBirthday("1", "Ada"))
	fields := []domain.FieldKey{domain.FieldGivenName}

	ch := newService(store).FetchAsync(context.Background(), fields)
	fields[0] = domain.FieldNote

	select {
	case result, ok := <-ch:
		require.True(t, ok)
		assert.True(t, result.Success)
		require.Len(t, result.Records, 1)
		assert.Equal(t, domain.NormalizedText("Ada"), result.Records[0]["givenName"])
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for fetch result")
	}

	_, open := <-ch
	assert.False(t, open, "channel should be closed after the single result")
}

func TestContactService_FetchAsync_Denied(t *testing.T) {
	store := memory.NewContactStore()
	store.SetGranted(false)

	result := <-newService(store).FetchAsync(context.Background(), nil)

	assert.Equal(t, domain.FailedFetch(), result)
}

func TestContactService_ConcurrentFetchesAreIndependent(t *testing.T) {
	store := &countingStore{ContactStore: memory.NewContactStore(contactWithBirthday("1", "Ada"))}
	svc := newService(store)

	var wg sync.WaitGroup
	results := make([]domain.FetchResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.FetchDefault(context.Background())
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.True(t, r.Success)
		assert.Len(t, r.Records, 1)
	}
	assert.Equal(t, len(results), store.queries)
}

func TestContactService_LogsDenial(t *testing.T) {
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(false)

	store := memory.NewContactStore()
	store.SetGranted(false)
	newService(store).FetchDefault(context.Background())

	assert.Contains(t, buf.String(), "[WARN] cannot have access to user contacts")
}

func TestFieldCatalog_Fields(t *testing.T) {
	infos := NewFieldCatalog().Fields()

	require.Len(t, infos, len(domain.AllFieldKeys()))

	defaults := 0
	for _, info := range infos {
		assert.NotEmpty(t, info.Description, "missing description for %s", info.Key)
		if info.Default {
			defaults++
		}
	}
	assert.Equal(t, len(domain.DefaultFieldKeys()), defaults)
}
