package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caldera-app/shipkit/internal/version"
)

// newPublishCmd creates the 'publish' command.
func newPublishCmd() *cobra.Command {
	var (
		lineageName string
		notes       string
		updateMeta  bool
	)

	cmd := &cobra.Command{
		Use:   "publish <major.minor.patch>",
		Short: "Publish a built version as a tagged remote release",
		Long: `Create a remote release for an already-built version and upload its
archive and signature as release assets. The version folder and both
artifacts must exist locally.

With --update-metadata the shared auto-update document is rewritten to
point at this version afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := version.ParseVersion(args[0])
			if err != nil {
				return err
			}
			lineage, err := version.ParseBuild(lineageName)
			if err != nil {
				return err
			}
			av := version.AppVersion{Version: v, Build: lineage}

			mgr, _, err := newManager()
			if err != nil {
				return err
			}

			if _, err := mgr.Publish(cmd.Context(), av, notes); err != nil {
				return err
			}
			fmt.Printf("Published %s as %s\n", av.Version, av.Tag())

			if updateMeta {
				if err := mgr.UpdateMetadata(cmd.Context(), av, notes); err != nil {
					return err
				}
				fmt.Println("Auto-update metadata pushed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lineageName, "lineage", "l", "release", "Build lineage (debug or release)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Release notes")
	cmd.Flags().BoolVar(&updateMeta, "update-metadata", false, "Rewrite the shared auto-update document")
	return cmd
}
