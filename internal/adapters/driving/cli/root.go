// Package cli provides the addrbook command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/addrbook/internal/logger"
)

// version is set by the entry point; "dev" for local builds.
var version = "dev"

// Global flags shared by every command.
var (
	configDir  string
	storeFlag  string
	pathFlag   string
	fieldsFlag string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "addrbook",
	Short: "Read your address book as flat JSON records",
	Long: `addrbook reads contacts from an address book and flattens each one
into a record of plain values: text, lists of text and small maps.

Supported stores:
  vcard   - a directory of .vcf files (default)
  sqlite  - an addrbook snapshot database
  google  - Google Contacts, after 'addrbook auth login'
  memory  - an empty in-memory store, for trying things out

The store and its settings come from ~/.addrbook/config.toml and can be
overridden per invocation with --store and --path.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.addrbook)")
	flags.StringVarP(&storeFlag, "store", "s", "", "contact store: google, sqlite, vcard or memory")
	flags.StringVar(&pathFlag, "path", "", "vCard directory or SQLite database of the store")
	flags.StringVarP(&fieldsFlag, "fields", "f", "", "comma-separated fields to fetch (see 'addrbook fields')")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
