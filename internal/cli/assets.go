package cli

import (
	"fmt"
	"io"

	"github.com/agentx-labs/assetctl/internal/asset"
	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var assetsAvailable bool

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List assets installed in the project",
	Long: `List the asset store ids of objects in the project. With --available,
list the catalog instead and mark the assets already in the project.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		p, err := a.loadProject()
		if err != nil {
			return err
		}
		installed := project.EnumerateAssetStoreIDs(p, nil)

		if !assetsAvailable {
			if len(installed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No assets installed.")
				return nil
			}
			for _, id := range installed.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		}

		headers, err := a.publicCatalog().ListHeaders(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing assets: %w", err)
		}
		printAvailable(cmd.OutOrStdout(), headers, installed)
		return nil
	},
}

func init() {
	assetsCmd.Flags().BoolVar(&assetsAvailable, "available", false, "List assets available in the catalog")
	rootCmd.AddCommand(assetsCmd)
}

func printAvailable(w io.Writer, headers []asset.Header, installed project.AssetIndex) {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetHeader([]string{"ID", "Name", "Tag", "Installed"})
	for _, h := range headers {
		mark := ""
		if installed.Has(h.ID) {
			mark = "✓"
		}
		table.Append([]string{h.ID, h.Name, h.Tag, mark})
	}
	table.Render()
}
