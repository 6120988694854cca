// Package cli provides configuration management commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caldera-app/shipkit/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage shipkit configuration",
		Long: `Configuration management commands for shipkit.

Commands:
  init  - Interactive configuration setup
  show  - Display current configuration
  path  - Show configuration file path`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration interactively",
		Long: `Interactive configuration setup for shipkit.

The configuration will be saved to ~/.config/shipkit/config

Use --force to overwrite existing configuration. Signing secrets are
never stored; set SHIPKIT_SIGNING_KEY and SHIPKIT_SIGNING_KEY_PASSWORD
in the environment instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := cfgFile
			if configPath == "" {
				var err error
				configPath, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}

			if !force {
				if _, err := os.Stat(configPath); err == nil {
					fmt.Printf("Configuration already exists at: %s\n", configPath)
					fmt.Println("Use --force to overwrite or run 'config show' to view current config.")
					return nil
				}
			}

			fmt.Println("shipkit Configuration Setup")
			fmt.Println("===========================")
			fmt.Println()

			cfg := config.New()

			cfg.Repo = promptRequired("Repository (owner/name)")
			cfg.APIToken = promptRequired("Hosting API token")
			cfg.GistID = promptOptional("Update gist ID", "")
			cfg.GistFile = promptOptional("Update gist file name", cfg.GistFile)

			fmt.Println()
			fmt.Println("Local Paths")
			fmt.Println("-----------")
			cfg.BuildsDir = promptRequired("Builds root directory")
			cfg.DebugBundleDir = promptRequired("Debug bundle output directory")
			cfg.ReleaseBundleDir = promptRequired("Release bundle output directory")
			cfg.CargoManifest = promptRequired("Cargo manifest path")
			cfg.AppManifest = promptRequired("App config path")

			fmt.Println()
			fmt.Println("Bundler")
			fmt.Println("-------")
			cfg.BundleCommand = strings.Fields(promptOptional("Bundle command", "pnpm tauri build"))
			cfg.ArchiveExt = promptOptional("Archive extension", cfg.ArchiveExt)
			cfg.SigExt = promptOptional("Signature extension", cfg.SigExt)

			if err := config.Save(cfg, configPath); err != nil {
				return err
			}
			fmt.Printf("\nConfiguration saved to: %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	return cmd
}

func promptRequired(label string) string {
	for {
		fmt.Printf("%s (required): ", label)
		input, err := readLine()
		if err != nil {
			return ""
		}
		if input != "" {
			return input
		}
		fmt.Printf("  Error: %s is required\n", label)
	}
}

func promptOptional(label, defaultValue string) string {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", label, defaultValue)
	} else {
		fmt.Printf("%s: ", label)
	}
	input, err := readLine()
	if err != nil || input == "" {
		return defaultValue
	}
	return input
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Repository:         %s\n", cfg.Repo)
			fmt.Printf("API token:          %s\n", maskToken(cfg.APIToken))
			fmt.Printf("Gist:               %s (%s)\n", cfg.GistID, cfg.GistFile)
			fmt.Printf("Builds root:        %s\n", cfg.BuildsDir)
			fmt.Printf("Debug bundle dir:   %s\n", cfg.DebugBundleDir)
			fmt.Printf("Release bundle dir: %s\n", cfg.ReleaseBundleDir)
			fmt.Printf("Cargo manifest:     %s\n", cfg.CargoManifest)
			fmt.Printf("App manifest:       %s\n", cfg.AppManifest)
			fmt.Printf("Bundle command:     %s\n", strings.Join(cfg.BundleCommand, " "))
			fmt.Printf("Archive extension:  %s\n", cfg.ArchiveExt)
			fmt.Printf("Signature ext:      %s\n", cfg.SigExt)
			for id, pattern := range cfg.Platforms {
				fmt.Printf("Platform %-10s %s\n", id+":", pattern)
			}

			if err := cfg.Validate(); err != nil {
				fmt.Printf("\nWarning: configuration incomplete: %v\n", err)
			}
			return nil
		},
	}
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// newConfigPathCmd creates the 'config path' command.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				var err error
				path, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}
			fmt.Println(path)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println("(file does not exist yet; run 'shipkit config init')")
			}
			return nil
		},
	}
}
