package cli

import (
	"fmt"

	"github.com/agentx-labs/assetctl/internal/extension"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	extensionCmd.AddCommand(extensionListCmd)
	rootCmd.AddCommand(extensionCmd)
}

var extensionCmd = &cobra.Command{
	Use:     "extension",
	Aliases: []string{"ext"},
	Short:   "Inspect project extensions",
}

var extensionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed extensions and whether they are up to date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		p, err := a.loadProject()
		if err != nil {
			return err
		}
		if len(p.Extensions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No extensions installed.")
			return nil
		}

		entries, err := a.registry.ListExtensions(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading extension registry: %w", err)
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetBorder(false)
		table.SetHeader([]string{"Name", "Full name", "Installed", "Available", "Status"})
		for _, s := range extension.Statuses(p, entries) {
			table.Append([]string{s.Name, s.FullName, s.Installed, s.Available, s.Status})
		}
		table.Render()
		return nil
	},
}
