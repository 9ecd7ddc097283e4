package vcard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func simpleCard(given string) string {
	return "BEGIN:VCARD\r\nVERSION:4.0\r\nN:;" + given + ";;;\r\nFN:" + given + "\r\nEND:VCARD\r\n"
}

func TestStore_Type(t *testing.T) {
	assert.Equal(t, domain.StoreTypeVCard, NewStore(t.TempDir()).Type())
}

func TestStore_RequestAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("existing directory", func(t *testing.T) {
		granted, err := NewStore(t.TempDir()).RequestAccess(ctx)
		require.NoError(t, err)
		assert.True(t, granted)
	})

	t.Run("missing directory", func(t *testing.T) {
		granted, err := NewStore(filepath.Join(t.TempDir(), "missing")).RequestAccess(ctx)
		require.NoError(t, err)
		assert.False(t, granted)
	})

	t.Run("regular file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.vcf", simpleCard("Ada"))

		_, err := NewStore(filepath.Join(dir, "a.vcf")).RequestAccess(ctx)
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})

	t.Run("closed", func(t *testing.T) {
		s := NewStore(t.TempDir())
		require.NoError(t, s.Close())

		_, err := s.RequestAccess(ctx)
		require.ErrorIs(t, err, domain.ErrStoreClosed)
	})
}

func TestStore_DefaultContainerIsAbsoluteDir(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	id, err := s.DefaultContainerID(context.Background())
	require.NoError(t, err)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, id)
}

func TestStore_UnifiedContacts_OrderAndFiltering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.vcf", simpleCard("Charles")+simpleCard("Dora"))
	writeFile(t, dir, "a.VCF", simpleCard("Ada"))
	writeFile(t, dir, "notes.txt", "not a card")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.vcf"), 0o755))

	s := NewStore(dir)
	ctx := context.Background()
	id, err := s.DefaultContainerID(ctx)
	require.NoError(t, err)

	contacts, err := s.UnifiedContacts(ctx, id, []domain.FieldKey{domain.FieldGivenName})
	require.NoError(t, err)
	require.Len(t, contacts, 3)

	names := make([]domain.FieldValue, len(contacts))
	for i, c := range contacts {
		names[i] = c.Fields[domain.FieldGivenName]
	}
	assert.Equal(t, []domain.FieldValue{domain.Text("Ada"), domain.Text("Charles"), domain.Text("Dora")}, names)
}

func TestStore_UnifiedContacts_SkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.vcf", "this is not a vcard\n")
	writeFile(t, dir, "good.vcf", simpleCard("Ada"))

	s := NewStore(dir)
	contacts, err := s.UnifiedContacts(context.Background(), s.Dir(), []domain.FieldKey{domain.FieldGivenName})

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, domain.Text("Ada"), contacts[0].Fields[domain.FieldGivenName])
}

func TestStore_UnifiedContacts_EmptyDirectory(t *testing.T) {
	s := NewStore(t.TempDir())

	contacts, err := s.UnifiedContacts(context.Background(), s.Dir(), domain.DefaultFieldKeys())

	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestStore_UnifiedContacts_UnknownContainer(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.UnifiedContacts(context.Background(), "/elsewhere", nil)

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ContactIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.vcf", adaCard+simpleCard("Anon"))
	s := NewStore(dir)

	first, err := s.UnifiedContacts(context.Background(), s.Dir(), nil)
	require.NoError(t, err)
	second, err := s.UnifiedContacts(context.Background(), s.Dir(), nil)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, "ada-1", first[0].ID)
	assert.NotEmpty(t, first[1].ID)
	assert.Equal(t, first[1].ID, second[1].ID, "generated IDs are stable")
}

func TestStore_Closed(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Close())

	_, err := s.DefaultContainerID(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreClosed)

	_, err = s.UnifiedContacts(context.Background(), s.Dir(), nil)
	require.ErrorIs(t, err, domain.ErrStoreClosed)
}
