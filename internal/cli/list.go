package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caldera-app/shipkit/internal/config"
	"github.com/caldera-app/shipkit/internal/store"
	"github.com/caldera-app/shipkit/internal/version"
)

// newListCmd creates the 'list' command.
func newListCmd() *cobra.Command {
	var lineageName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built versions, latest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Listing needs only the builds root, not a full valid
			// config, so this works before hosting is set up.
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.BuildsDir == "" {
				return config.ErrMissingBuildsDir
			}
			s := store.Store{Root: cfg.BuildsDir}

			var list []version.AppVersion
			if lineageName == "" {
				list, err = s.ListAll()
			} else {
				var lineage version.Build
				lineage, err = version.ParseBuild(lineageName)
				if err != nil {
					return err
				}
				list, err = s.List(lineage)
			}
			if err != nil {
				return err
			}

			if len(list) == 0 {
				fmt.Println("No builds found.")
				return nil
			}
			for _, av := range list {
				fmt.Printf("%-20s %-8s %s\n", av.Folder(), av.Build, av.Tag())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lineageName, "lineage", "l", "", "Limit to one lineage (debug or release)")
	return cmd
}
