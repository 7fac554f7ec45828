package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/agentx-labs/assetctl/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: heredoc.Doc(`
		Read and write settings stored at ~/.assetctl/config.yaml.

		Keys: catalog.public_url, catalog.private_url, catalog.token,
		catalog.rate_limit, registry.url, registry.cache_ttl, fetch.concurrency,
		log.level, project.file, resources.dir, telemetry.textfile.
		Every key can be overridden with an ASSETCTL_ environment variable,
		e.g. ASSETCTL_CATALOG_TOKEN.`),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
