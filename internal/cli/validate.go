package cli

import (
	"fmt"

	"github.com/agentx-labs/assetctl/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate asset description files",
	Long:  `Check YAML or JSON asset descriptions against the asset schema.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			body, result, err := manifest.ParseFile(path)
			if err != nil {
				return err
			}
			if !result.Valid {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", path)
				for _, issue := range result.Issues {
					fmt.Fprintf(cmd.OutOrStdout(), "    %s: %s\n", issue.Path, issue.Message)
				}
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (%s, %d object(s))\n", path, body.ID, len(body.ObjectAssets))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
