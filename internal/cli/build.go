package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caldera-app/shipkit/internal/version"
)

// newBuildCmd creates the 'build' command.
func newBuildCmd() *cobra.Command {
	var lineageName string

	cmd := &cobra.Command{
		Use:   "build <major.minor>",
		Short: "Resolve the next version and run a packaged build",
		Long: `Resolve the next free version for the lineage, rewrite the manifest
versions, run the bundler, and copy the produced archive + signature into
a new version folder.

The patch number is always assigned automatically: pass "1.4", never
"1.4.0".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragment, err := version.Parse(args[0])
			if err != nil {
				return err
			}
			lineage, err := version.ParseBuild(lineageName)
			if err != nil {
				return err
			}

			mgr, _, err := newManager()
			if err != nil {
				return err
			}

			av, err := mgr.Build(cmd.Context(), fragment, lineage)
			if err != nil {
				return err
			}
			fmt.Printf("Built %s (%s)\n", av.Version, av.Build)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lineageName, "lineage", "l", "release", "Build lineage (debug or release)")
	return cmd
}
