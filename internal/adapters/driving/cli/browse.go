package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/addrbook/internal/adapters/driving/tui"
	"github.com/custodia-labs/addrbook/internal/logger"
)

// browseCmd represents the browse command.
var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"tui"},
	Short:   "Browse contacts in the terminal",
	Long: `Launch the interactive contact browser.

Contacts from the configured store are listed on the left and the
highlighted record is shown as JSON on the right.

Controls:
  ↑/k, ↓/j   - Move through contacts
  /          - Filter
  Esc        - Clear the filter
  PgUp/PgDn  - Scroll the record
  r          - Fetch again
  ?          - Toggle help
  q          - Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	app, err := tui.NewApp(&tui.Ports{
		Contacts:  sess.contacts,
		Fields:    sess.fields,
		StoreName: sess.source.Type,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// The status bar reports failures while the alternate screen is active.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
