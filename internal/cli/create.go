package cli

import (

	"github.com/agentx-labs/assetctl/internal/asset"
	"github.com/agentx-labs/assetctl/internal/installer"
	"github.com/spf13/cobra"
)

var (
	createLayout     string
	createRequires   []string
	createYes        bool
	createSkipUpdate bool
)

var createCmd = &cobra.Command{
	Use:   "create <name> <type>",
	Short: "Create an empty object",
	Long: `Create an empty object of the given type. The extension the type belongs
to (e.g. "Physics3D" for "Physics3D::Body") and any --require'd extensions
are resolved first: missing ones are installed and out-of-date ones are
updated once confirmed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		p, err := a.loadProject()
		if err != nil {
			return err
		}
		o, err := a.orchestrator(updateConfirm(createYes, createSkipUpdate))
		if err != nil {
			return err
		}

		result, createErr := o.CreateEmptyObject(cmd.Context(),
			installer.Target{Project: p, Layout: createLayout},
			asset.ObjectTemplate{Name: args[0], Type: args[1], RequiredExtensions: createRequires})
		if createErr == nil {
			printResult(cmd.OutOrStdout(), result)
		}
		return a.finish(p, createErr)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createLayout, "layout", "l", "", "Add the object to this layout")
	createCmd.Flags().StringSliceVar(&createRequires, "require", nil, "Extensions the object needs besides the one implied by its type")
	createCmd.Flags().BoolVarP(&createYes, "yes", "y", false, "Update out-of-date extensions without asking")
	createCmd.Flags().BoolVar(&createSkipUpdate, "skip-update", false, "Keep out-of-date extensions without asking")
	createCmd.MarkFlagsMutuallyExclusive("yes", "skip-update")
	rootCmd.AddCommand(createCmd)
}
