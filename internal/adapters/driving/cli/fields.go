package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/addrbook/internal/core/ports/driving"
	"github.com/custodia-labs/addrbook/internal/core/services"
)

var fieldsJSON bool

// fieldCatalog describes the requestable fields.
var fieldCatalog driving.FieldCatalog = services.NewFieldCatalog()

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the fields a fetch can request",
	Long: `Lists every field key accepted by --fields. Keys marked with * make up
the default set used when no fields are given.`,
	Args: cobra.NoArgs,
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(fieldsCmd)
}

type fieldOutput struct {
	Key         string `json:"key"`
	Default     bool   `json:"default"`
	Description string `json:"description"`
}

func runFields(cmd *cobra.Command, _ []string) error {
	infos := fieldCatalog.Fields()

	if fieldsJSON {
		out := make([]fieldOutput, len(infos))
		for i, f := range infos {
			out[i] = fieldOutput{Key: f.Key.String(), Default: f.Default, Description: f.Description}
		}
		return writeJSON(cmd.OutOrStdout(), out, true)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, f := range infos {
		marker := " "
		if f.Default {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\n", marker, f.Key, f.Description)
	}
	return w.Flush()
}
