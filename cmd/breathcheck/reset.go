// Reset command for the breathcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	resetProgressFlag bool
	resetAllFlag      bool
	resetAccountFlag  bool
	resetYes          bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete stored data",
	Long: `Reset deletes data permanently. Exactly one scope is required:

  --progress   module progress and saved module work
  --all        every table in the database
  --account    everything, plus the encryption key and master password

Example:
  breathcheck reset --progress
  breathcheck reset --account --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scopes := 0
		for _, b := range []bool{resetProgressFlag, resetAllFlag, resetAccountFlag} {
			if b {
				scopes++
			}
		}
		if scopes != 1 {
			fmt.Fprintln(os.Stderr, "reset: give exactly one of --progress, --all, --account")
			os.Exit(exitUserError)
		}

		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "reset:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		switch {
		case resetProgressFlag:
			if !confirm("This resets all module progress and saved module work.", resetYes) {
				fmt.Println("Cancelled")
				return nil
			}
			if err := a.maint.ResetProgress(); err != nil {
				fmt.Fprintln(os.Stderr, "reset:", err)
				os.Exit(exitSysError)
			}
			fmt.Println("Module progress reset")

		case resetAllFlag:
			if !confirm("This permanently deletes all local data.", resetYes) {
				fmt.Println("Cancelled")
				return nil
			}
			if err := a.maint.DeleteAllData(); err != nil {
				fmt.Fprintln(os.Stderr, "reset:", err)
				os.Exit(exitSysError)
			}
			fmt.Println("All data deleted")

		case resetAccountFlag:
			if !confirm("This permanently deletes all local data, the encryption key, and the master password.", resetYes) {
				fmt.Println("Cancelled")
				return nil
			}
			if err := a.maint.DeleteAccount(); err != nil {
				fmt.Fprintln(os.Stderr, "reset:", err)
				os.Exit(exitSysError)
			}
			fmt.Println("Account data deleted")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetProgressFlag, "progress", false, "reset module progress and module work")
	resetCmd.Flags().BoolVar(&resetAllFlag, "all", false, "delete every table")
	resetCmd.Flags().BoolVar(&resetAccountFlag, "account", false, "delete everything including keychain entries")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "skip confirmation")
}
