// Init command for the registry CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the registry configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		if err := ensureConfigDir(configDir); err != nil {
			return err
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return err
		}

		fmt.Println("Registry initialized successfully")
		fmt.Println("  config:", configDir)
		return nil
	},
}
