// Status command for the breathcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show encryption, AI, and program status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "status:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		encEnabled, encText := a.maint.EncryptionStatus()

		settings, err := a.settings.Current()
		if err != nil {
			fmt.Fprintln(os.Stderr, "load settings:", err)
			os.Exit(exitSysError)
		}

		completion, err := a.progress.Completion(types.ModuleIDs())
		if err != nil {
			fmt.Fprintln(os.Stderr, "compute completion:", err)
			os.Exit(exitSysError)
		}

		streak, err := a.tracking.CurrentStreak()
		if err != nil {
			fmt.Fprintln(os.Stderr, "compute streak:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(map[string]any{
				"encryption_enabled":  encEnabled,
				"encryption_status":   encText,
				"ai_enabled":          settings.AIEnabled,
				"ai_key_configured":   a.gen.Configured(),
				"master_password_set": a.vault.HasMasterPassword(),
				"completed_modules":   completion.CompletedModules,
				"total_modules":       completion.TotalModules,
				"streak_days":         streak,
				"database":            a.dbPath,
			})
		}

		fmt.Println(encText)
		fmt.Printf("AI insights:     %s (key %s)\n", onOff(settings.AIEnabled), configuredWord(a.gen.Configured()))
		fmt.Printf("Master password: %s\n", setWord(a.vault.HasMasterPassword()))
		fmt.Printf("Modules:         %d of %d complete\n", completion.CompletedModules, completion.TotalModules)
		fmt.Printf("Streak:          %d day(s)\n", streak)
		fmt.Printf("Database:        %s\n", a.dbPath)
		return nil
	},
}

func configuredWord(b bool) string {
	if b {
		return "configured"
	}
	return "missing"
}

func setWord(b bool) string {
	if b {
		return "set"
	}
	return "not set"
}
