package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caldera-app/shipkit/internal/manifest"
	"github.com/caldera-app/shipkit/internal/store"
	"github.com/caldera-app/shipkit/internal/version"
)

// newStatusCmd creates the 'status' command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show manifest versions and the latest build per lineage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if cfg.CargoManifest != "" {
				if v, err := manifest.CargoVersion(cfg.CargoManifest); err == nil {
					fmt.Printf("Cargo manifest:    %s (%s)\n", v, cfg.CargoManifest)
				} else {
					fmt.Printf("Cargo manifest:    unreadable (%v)\n", err)
				}
			}
			if cfg.AppManifest != "" {
				if v, err := manifest.AppConfigVersion(cfg.AppManifest); err == nil {
					fmt.Printf("App manifest:      %s (%s)\n", v, cfg.AppManifest)
				} else {
					fmt.Printf("App manifest:      unreadable (%v)\n", err)
				}
			}

			if cfg.BuildsDir != "" {
				s := store.Store{Root: cfg.BuildsDir}
				for _, lineage := range []version.Build{version.Release, version.Debug} {
					list, err := s.List(lineage)
					if err != nil {
						return err
					}
					if len(list) == 0 {
						fmt.Printf("Latest %-8s    none\n", lineage.String()+":")
					} else {
						fmt.Printf("Latest %-8s    %s\n", lineage.String()+":", list[0].Version)
					}
				}
			}
			return nil
		},
	}
}
