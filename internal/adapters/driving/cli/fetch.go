package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var fetchPretty bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch contacts as JSON records",
	Long: `Requests access to the configured store, reads every contact in its
default container and prints {"success": ..., "records": [...]}.

A store that denies access or fails prints success false with no records;
the command still exits 0. Output is indented when stdout is a terminal.

Examples:
  addrbook fetch
  addrbook fetch --fields givenName,familyName,phoneNumbers
  addrbook fetch --store sqlite --path ~/contacts.db --pretty`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchPretty, "pretty", false, "indent the JSON output")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	result := sess.contacts.Fetch(cmd.Context(), sess.fields)

	out := cmd.OutOrStdout()
	return writeJSON(out, result, fetchPretty || isTerminal(out))
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
