// Settings commands for the breathcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var (
	settingsReminder    string
	settingsTheme       string
	settingsComfort     bool
	settingsAI          bool
	settingsOnboarded   bool
	settingsAPIKey      string
	settingsClearAPIKey bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and change app settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Set changes only the settings whose flags are given. The API key is
written to the system keychain, not the database.

Example:
  breathcheck settings set --ai-enabled --theme dark
  breathcheck settings set --api-key sk-...
  breathcheck settings set --clear-api-key`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the stored AI API key against the service",
	Args:  cobra.NoArgs,
	RunE:  runSettingsCheck,
}

func init() {
	settingsSetCmd.Flags().StringVar(&settingsReminder, "reminder-time", "", "daily reminder slot (for example Morning)")
	settingsSetCmd.Flags().StringVar(&settingsTheme, "theme", "", "theme mode (light or dark)")
	settingsSetCmd.Flags().BoolVar(&settingsComfort, "comfort-mode", false, "reduce intense content")
	settingsSetCmd.Flags().BoolVar(&settingsAI, "ai-enabled", false, "allow AI-generated insights")
	settingsSetCmd.Flags().BoolVar(&settingsOnboarded, "onboarded", false, "mark onboarding as completed")
	settingsSetCmd.Flags().StringVar(&settingsAPIKey, "api-key", "", "store the AI API key in the keychain")
	settingsSetCmd.Flags().BoolVar(&settingsClearAPIKey, "clear-api-key", false, "remove the stored AI API key")

	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "settings get:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	s, err := a.settings.Current()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load settings:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"reminder_time":        s.ReminderTime,
			"theme_mode":           s.ThemeMode,
			"comfort_mode":         s.ComfortMode,
			"ai_enabled":           s.AIEnabled,
			"onboarding_completed": s.OnboardingCompleted,
			"ai_key_configured":    a.gen.Configured(),
		})
	}

	fmt.Printf("Reminder time: %s\n", s.ReminderTime)
	fmt.Printf("Theme:         %s\n", s.ThemeMode)
	fmt.Printf("Comfort mode:  %s\n", onOff(s.ComfortMode))
	fmt.Printf("AI insights:   %s\n", onOff(s.AIEnabled))
	fmt.Printf("Onboarding:    %s\n", onOff(s.OnboardingCompleted))
	fmt.Printf("API key:       %s\n", configuredWord(a.gen.Configured()))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "settings set:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	changedAny := false

	if cmd.Flags().Changed("api-key") {
		if err := a.gen.SaveKey(settingsAPIKey); err != nil {
			fmt.Fprintln(os.Stderr, "settings set:", err)
			os.Exit(exitSysError)
		}
		if !flagJSON {
			fmt.Println("API key stored in keychain")
		}
		changedAny = true
	}
	if settingsClearAPIKey {
		if err := a.gen.ClearKey(); err != nil {
			fmt.Fprintln(os.Stderr, "settings set:", err)
			os.Exit(exitSysError)
		}
		if !flagJSON {
			fmt.Println("API key removed from keychain")
		}
		changedAny = true
	}

	mutators := make([]func(*types.UserSettings), 0, 5)
	if cmd.Flags().Changed("reminder-time") {
		mutators = append(mutators, func(s *types.UserSettings) { s.ReminderTime = settingsReminder })
	}
	if cmd.Flags().Changed("theme") {
		mutators = append(mutators, func(s *types.UserSettings) { s.ThemeMode = settingsTheme })
	}
	if cmd.Flags().Changed("comfort-mode") {
		mutators = append(mutators, func(s *types.UserSettings) { s.ComfortMode = settingsComfort })
	}
	if cmd.Flags().Changed("ai-enabled") {
		mutators = append(mutators, func(s *types.UserSettings) { s.AIEnabled = settingsAI })
	}
	if cmd.Flags().Changed("onboarded") {
		mutators = append(mutators, func(s *types.UserSettings) { s.OnboardingCompleted = settingsOnboarded })
	}

	if len(mutators) > 0 {
		if _, err := a.settings.Update(func(s *types.UserSettings) {
			for _, apply := range mutators {
				apply(s)
			}
		}); err != nil {
			fmt.Fprintln(os.Stderr, "save settings:", err)
			os.Exit(exitSysError)
		}
		changedAny = true
		if !flagJSON {
			fmt.Println("Settings updated")
		}
	}

	if !changedAny {
		fmt.Fprintln(os.Stderr, "settings set: no flags given, nothing to change")
		os.Exit(exitUserError)
	}

	if flagJSON {
		s, err := a.settings.Current()
		if err != nil {
			fmt.Fprintln(os.Stderr, "load settings:", err)
			os.Exit(exitSysError)
		}
		return printJSON(map[string]any{
			"reminder_time":        s.ReminderTime,
			"theme_mode":           s.ThemeMode,
			"comfort_mode":         s.ComfortMode,
			"ai_enabled":           s.AIEnabled,
			"onboarding_completed": s.OnboardingCompleted,
			"ai_key_configured":    a.gen.Configured(),
		})
	}
	return nil
}

func runSettingsCheck(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "settings check:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	ok, msg := a.maint.CheckAPIKey(cmd.Context())

	if flagJSON {
		return printJSON(map[string]any{"valid": ok, "message": msg})
	}

	fmt.Println(msg)
	if !ok {
		os.Exit(exitUserError)
	}
	return nil
}
