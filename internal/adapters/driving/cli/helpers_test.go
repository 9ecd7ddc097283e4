package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
)

// resetFlags restores every package-level flag variable.
func resetFlags() {
	configDir = ""
	storeFlag = ""
	pathFlag = ""
	fieldsFlag = ""
	verbose = false
	fetchPretty = false
	fieldsJSON = false
	snapshotTo = ""
	authClientID = ""
	authClientSecret = ""
	authNoBrowser = false
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// useStore makes every command open store. The returned pointer receives
// the source the command resolved.
func useStore(t *testing.T, store driven.ContactStore) *domain.Source {
	t.Helper()

	var got domain.Source
	original := openStore
	openStore = func(_ context.Context, _ string, source domain.Source) (driven.ContactStore, error) {
		got = source
		return store, nil
	}
	t.Cleanup(func() { openStore = original })
	return &got
}

func ada() domain.Contact {
	c := domain.NewContact("ada")
	c.Set(domain.FieldGivenName, domain.Text("Ada"))
	c.Set(domain.FieldFamilyName, domain.Text("Lovelace"))
	c.Set(domain.FieldNote, domain.Text("Analyst"))
	c.Set(domain.FieldEmailAddresses, domain.Sequence{
		domain.Label("home", domain.Text("ada@example.com")),
	})
	return c
}
