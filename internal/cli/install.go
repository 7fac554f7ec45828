package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/agentx-labs/assetctl/internal/asset"
	"github.com/agentx-labs/assetctl/internal/installer"
	"github.com/spf13/cobra"
)

var (
	installLayout     string
	installPrivate    bool
	installYes        bool
	installSkipUpdate bool
)

var installCmd = &cobra.Command{
	Use:   "install <asset-id>",
	Short: "Install an asset into the project",
	Long: heredoc.Doc(`
		Install an asset from the asset store. The asset's objects are added to
		the project's global objects, or to a layout with --layout. Extensions
		the asset needs are installed first; if installed extensions are older
		than required you are asked whether to update them.

		Private assets need --private, a catalog token and a cloud project.`),
	Example: "assetctl install tree01 --layout Level1",
	Args:    cobra.ExactArgs(1),
	RunE:    runInstall,
}

func init() {
	addInstallFlags(installCmd)
	installCmd.Flags().BoolVar(&installPrivate, "private", false, "Install from the private catalog")
	rootCmd.AddCommand(installCmd)
}

func addInstallFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&installLayout, "layout", "l", "", "Add objects to this layout instead of the global objects")
	cmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Update out-of-date extensions without asking")
	cmd.Flags().BoolVar(&installSkipUpdate, "skip-update", false, "Keep out-of-date extensions without asking")
	cmd.MarkFlagsMutuallyExclusive("yes", "skip-update")
}

func runInstall(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	header := asset.Header{ID: args[0], Name: args[0], IsPrivate: true}
	if !installPrivate {
		headers, missing, err := a.publicCatalog().Headers(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("listing assets: %w", err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("asset %q not found in the catalog (use --private for assets you own)", missing[0])
		}
		header = headers[0]
	}

	p, err := a.loadProject()
	if err != nil {
		return err
	}
	o, err := a.orchestrator(updateConfirm(installYes, installSkipUpdate))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Installing %s...\n", header.Name)
	result, installErr := o.InstallAsset(cmd.Context(), installer.Target{Project: p, Layout: installLayout}, header, nil)
	printResult(cmd.OutOrStdout(), result)
	return a.finish(p, installErr)
}
