// Root command for the registry CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/NSC-Rick/stjregistry/internal/secrets"
	"github.com/NSC-Rick/stjregistry/pkg/registry"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagPassword  string
	flagJSON      bool
)

// cfg holds the loaded config.yaml values. Set by PersistentPreRunE so
// all subcommands can use it.
var cfg appConfig

var rootCmd = &cobra.Command{
	Use:   "registry",
	Short: "Registry is the NEK entrepreneurial registry portal",
	Long: `Registry manages the shared grids of the NEK entrepreneurial
registry: initiatives, members, and speakers. Edits are reconciled into
update and insert batches and saved to the central record store.`,
	Version: registry.Version,
	// Do not print usage on errors returned by subcommands.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version and init run without credentials or a password.
		switch cmd.Name() {
		case "version", "init":
			return nil
		}

		secrets.Load()
		if err := checkGate(); err != nil {
			return err
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, err = loadConfig(configDir)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "sqlite data directory (default: $(CWD)/.stjregistry-db)")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "shared access password (or REGISTRY_PASSWORD)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(statsCmd)
}
