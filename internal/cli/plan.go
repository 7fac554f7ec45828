package cli

import (
	"fmt"

	"github.com/agentx-labs/assetctl/internal/asset"
	"github.com/agentx-labs/assetctl/internal/registry"
	"github.com/spf13/cobra"
)

var planPrivate bool

var planCmd = &cobra.Command{
	Use:   "plan <asset-id>...",
	Short: "Show the extensions an installation would install or update",
	Long: `Fetch the given assets and resolve the extensions they require against
the project, without changing anything.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var headers []asset.Header
		if planPrivate {
			for _, id := range args {
				headers = append(headers, asset.Header{ID: id, Name: id, IsPrivate: true})
			}
		} else {
			var missing []string
			headers, missing, err = a.publicCatalog().Headers(ctx, args)
			if err != nil {
				return fmt.Errorf("listing assets: %w", err)
			}
			if len(missing) > 0 {
				return fmt.Errorf("assets not found in the catalog: %v", missing)
			}
		}

		p, err := a.loadProject()
		if err != nil {
			return err
		}
		bodies, err := a.fetchPool().Fetch(ctx, headers)
		if err != nil {
			return err
		}
		report, err := registry.NewResolver(a.registry).ForAssets(ctx, bodies, p)
		if err != nil {
			return err
		}

		objects := 0
		for _, b := range bodies {
			objects += len(b.ObjectAssets)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d asset(s), %d object(s) to create.\n\n", len(bodies), objects)
		registry.PrintReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	planCmd.Flags().BoolVar(&planPrivate, "private", false, "Fetch from the private catalog")
	rootCmd.AddCommand(planCmd)
}
