package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caldera-app/shipkit/internal/version"
)

// newDeleteCmd creates the 'delete' command group.
func newDeleteCmd() *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a release (remote) or a build (local)",
		Long: `Deletion is explicit about scope: 'delete release' removes the remote
release and its tag, 'delete build' removes the local version folder.
Neither implies the other.`,
	}

	deleteCmd.AddCommand(newDeleteReleaseCmd())
	deleteCmd.AddCommand(newDeleteBuildCmd())
	return deleteCmd
}

func newDeleteReleaseCmd() *cobra.Command {
	var (
		lineageName string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "release <major.minor.patch>",
		Short: "Delete the remote release and its tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			av, err := parseAppVersion(args[0], lineageName)
			if err != nil {
				return err
			}

			mgr, _, err := newManager()
			if err != nil {
				return err
			}

			rel, err := mgr.FindRelease(cmd.Context(), av)
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete remote release %s? This cannot be undone.", av.Tag()))
				if err != nil || !ok {
					return err
				}
			}

			if err := mgr.DeleteRelease(cmd.Context(), rel.ID, av.Tag()); err != nil {
				return err
			}
			fmt.Printf("Deleted remote release %s\n", av.Tag())
			return nil
		},
	}

	cmd.Flags().StringVarP(&lineageName, "lineage", "l", "release", "Build lineage (debug or release)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newDeleteBuildCmd() *cobra.Command {
	var (
		lineageName string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "build <major.minor.patch>",
		Short: "Delete the local version folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			av, err := parseAppVersion(args[0], lineageName)
			if err != nil {
				return err
			}

			mgr, _, err := newManager()
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete local build folder %s? This cannot be undone.", av.Folder()))
				if err != nil || !ok {
					return err
				}
			}

			if err := mgr.DeleteLocalVersion(av); err != nil {
				return err
			}
			fmt.Printf("Deleted local build %s\n", av.Folder())
			return nil
		},
	}

	cmd.Flags().StringVarP(&lineageName, "lineage", "l", "release", "Build lineage (debug or release)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func parseAppVersion(versionText, lineageName string) (version.AppVersion, error) {
	v, err := version.ParseVersion(versionText)
	if err != nil {
		return version.AppVersion{}, err
	}
	lineage, err := version.ParseBuild(lineageName)
	if err != nil {
		return version.AppVersion{}, err
	}
	return version.AppVersion{Version: v, Build: lineage}, nil
}
