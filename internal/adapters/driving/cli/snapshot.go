package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/addrbook/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/addrbook/internal/connectors/vcard"
	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/core/services"
)

var snapshotTo string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Copy the configured store to a local file",
	Long: `Reads every contact from the configured store and writes it to a local
address book that the sqlite or vcard stores can read offline.

A path ending in .vcf is written as a vCard file; anything else is written
as a SQLite database. Existing contacts in the target are replaced.

Every field is copied unless --fields is given.

Examples:
  addrbook snapshot --store google --to ~/.addrbook/contacts.db
  addrbook snapshot --to backup/contacts.vcf`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotTo, "to", "", "target file (.vcf for vCard, otherwise SQLite)")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	if snapshotTo == "" {
		return errors.New("--to is required")
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	sink, err := openSink(snapshotTo)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	var fields []domain.FieldKey
	if len(splitList(fieldsFlag)) > 0 {
		fields = sess.fields
	}

	n, err := services.NewSnapshotService(sess.store, sink).Snapshot(cmd.Context(), fields)
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d contacts from %s to %s\n", n, sess.source.Type, snapshotTo)
	return nil
}

// openSink picks the writer for a target path by extension.
func openSink(path string) (driven.ContactSink, error) {
	if strings.EqualFold(filepath.Ext(path), vcard.Extension) {
		return vcard.NewWriter(path), nil
	}

	w, err := sqlite.NewWriter(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return w, nil
}
