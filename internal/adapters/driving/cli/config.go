package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write configuration",
	Long: `Manage ~/.addrbook/config.toml. Keys use dots for sections:

  store.type            google, sqlite, vcard or memory
  store.fields          default fields for fetch (comma-separated)
  vcard.path            directory of .vcf files
  sqlite.path           snapshot database
  google.client_id      OAuth client for Google Contacts
  google.client_secret
  google.token_file     token file, relative to the config directory
  google.page_size      contacts per request (1-1000)
  google.fetch_photos   download photos for imageData`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Sets a configuration value. Integers and booleans are stored as such and
values containing commas are stored as lists.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration values",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	v, ok := cfg.Get(args[0])
	if !ok {
		return fmt.Errorf("config key %q is not set", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), configString(v))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], parseConfigValue(args[1])
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, configString(value))
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	keys := cfg.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No configuration set.")
		return nil
	}
	for _, k := range keys {
		v, _ := cfg.Get(k)
		if strings.HasSuffix(k, "client_secret") {
			v = "********"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, configString(v))
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())
	return nil
}

// parseConfigValue types a command line value.
func parseConfigValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	if strings.Contains(raw, ",") {
		return splitList(raw)
	}
	return raw
}
