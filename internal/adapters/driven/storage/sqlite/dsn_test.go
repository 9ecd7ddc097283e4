package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/addrbook/internal/core/domain"
)

func TestFileDSN(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain", "/data/contacts.db", "file:///data/contacts.db?" + readOnlyParams},
		{"question mark", "/data/why?.db", "file:///data/why%3F.db?" + readOnlyParams},
		{"hash", "/data/#1/contacts.db", "file:///data/%231/contacts.db?" + readOnlyParams},
		{"percent", "/data/100%.db", "file:///data/100%25.db?" + readOnlyParams},
		{"space", "/my data/contacts.db", "file:///my%20data/contacts.db?" + readOnlyParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fileDSN(tt.path, readOnlyParams)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileDSN_RelativePathIsResolved(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := fileDSN("contacts.db", readWriteParams)
	require.NoError(t, err)

	want, err := fileDSN(filepath.Join(wd, "contacts.db"), readWriteParams)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestContactStore_PathWithURIDelimiters(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "odd?name#1")
	path := filepath.Join(dir, "contacts 100%.db")
	ctx := context.Background()

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.ReplaceContacts(ctx, "local", []domain.Contact{alan()}))
	require.NoError(t, w.Close())

	_, err = os.Stat(path)
	require.NoError(t, err, "database is created at the literal path")

	store := openStore(t, path)
	granted, err := store.RequestAccess(ctx)
	require.NoError(t, err)
	require.True(t, granted)

	contacts, err := store.UnifiedContacts(ctx, "local", []domain.FieldKey{domain.FieldGivenName})
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, domain.Text("Alan"), contacts[0].Fields[domain.FieldGivenName])
}
