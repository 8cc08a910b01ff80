// Init command for the breathcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize breathcheck storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve the config directory (flag > env > default) and ensure it
		// exists with a default config.yaml.
		configDir, err := resolveConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		if err := ensureConfigDir(configDir); err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}

		// Opening the store creates the database and brings the schema up
		// to date.
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		// Seed the module unlock chain so the first module is workable
		// right away.
		if err := a.learning.RepairUnlocks(types.ModuleIDs()); err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}

		fmt.Println("BreathCheck initialized successfully")
		fmt.Println("  config:  ", configDir)
		fmt.Println("  database:", a.dbPath)
		return nil
	},
}
