package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/agentx-labs/assetctl/internal/installer"
	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/spf13/cobra"
)

var packSkipExisting bool

var installPackCmd = &cobra.Command{
	Use:   "install-pack <pack-id>",
	Short: "Install every asset of a pack",
	Long: heredoc.Doc(`
		Install the assets of a pack, in pack order. The installation stops at
		the first asset that fails; assets installed before it are kept.

		With --skip-existing, assets already present in the project are left out.`),
	Args: cobra.ExactArgs(1),
	RunE: runInstallPack,
}

func init() {
	addInstallFlags(installPackCmd)
	installPackCmd.Flags().BoolVar(&packSkipExisting, "skip-existing", false, "Skip assets already in the project")
	rootCmd.AddCommand(installPackCmd)
}

func runInstallPack(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	public := a.publicCatalog()

	pack, err := public.Pack(ctx, args[0])
	if err != nil {
		return err
	}

	p, err := a.loadProject()
	if err != nil {
		return err
	}
	target := installer.Target{Project: p, Layout: installLayout}

	ids := pack.AssetIDs
	if packSkipExisting {
		container, err := target.Container()
		if err != nil {
			return err
		}
		existing := project.EnumerateAssetStoreIDs(p, container)
		ids = nil
		for _, id := range pack.AssetIDs {
			if !existing.Has(id) {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "All assets of %s are already in the project.\n", pack.Name)
		return nil
	}

	headers, missing, err := public.Headers(ctx, ids)
	if err != nil {
		return fmt.Errorf("listing assets: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("pack %s references unknown assets: %v", pack.Name, missing)
	}

	o, err := a.orchestrator(updateConfirm(installYes, installSkipUpdate))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Installing %d asset(s) from %s...\n", len(headers), pack.Name)
	result, installErr := o.InstallPack(ctx, target, pack, headers)
	printResult(cmd.OutOrStdout(), result)
	return a.finish(p, installErr)
}
