// Package cli provides the command-line interface for shipkit.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/caldera-app/shipkit/internal/bundler"
	"github.com/caldera-app/shipkit/internal/config"
	"github.com/caldera-app/shipkit/internal/hosting"
	"github.com/caldera-app/shipkit/internal/logging"
	"github.com/caldera-app/shipkit/internal/release"
)

var (
	// Global flags
	cfgFile  string
	apiToken string
	verbose  bool

	// Global logger
	logger *logging.Logger
)

// Version information - set by main package at startup via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// GetLogger returns the CLI logger, creating it if needed.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return logger
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shipkit",
		Short: "shipkit - release management for the Caldera desktop app",
		Long: `shipkit ` + Version + ` - Built: ` + BuildTime + `
Bumps manifest versions, runs the bundler, and publishes tagged releases
with auto-update metadata.

Run without arguments for the interactive menu, or use the subcommands
directly.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger()
			if verbose {
				logging.SetGlobalLevel(-1) // zerolog.TraceLevel, shows everything
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Hosting API token (overrides config and environment)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = Version + " (" + BuildTime + ")"

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig loads the configuration honoring the --config and --token
// flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if apiToken != "" {
		cfg.APIToken = apiToken
	}
	return cfg, nil
}

// newManager builds the release manager from a validated configuration.
func newManager() (*release.Manager, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	host, err := hosting.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	return release.NewManager(cfg, GetLogger(), bundler.New(cfg), host), cfg, nil
}
