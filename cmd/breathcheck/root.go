// Root command for the breathcheck CLI.
package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/internal/paths"
	"github.com/calmworks/breathcheck/pkg/breathcheck"
)

// Exit codes reported by the CLI.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagDB        string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir string
	configDBFile  string
	configAIModel string
	configAIKey   string
	configDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "breathcheck",
	Short: "BreathCheck is a local-first anxiety self-management companion",
	Long: `BreathCheck tracks daily mood, anxiety, and stress, walks you through a
six-module learning program, and keeps coping tool entries on this device.
Free-text fields are encrypted at rest; nothing leaves the machine unless
AI insights are enabled.`,
	Version:      breathcheck.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configDBFile = cfg.GetString(cfgKeyDBFile)
		configAIModel = cfg.GetString(cfgKeyAIModel)
		configAIKey = cfg.GetString(cfgKeyAIKey)
		configDebug = cfg.GetBool(cfgKeyDebug)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database file (default: <data-dir>/breathcheck.db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(milestonesCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(supportCmd)
	rootCmd.AddCommand(vaultCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > BREATHCHECK_CONFIG_DIR env >
// platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence chain:
// --data-dir flag > config.yaml data_dir > BREATHCHECK_DATA_DIR env >
// platform default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveDBPath returns the SQLite database file path. The --db flag wins;
// otherwise an absolute db_file from config is used as-is, and a relative
// one is joined onto the resolved data directory.
func resolveDBPath() (string, error) {
	if flagDB != "" {
		return filepath.Abs(flagDB)
	}

	name := configDBFile
	if name == "" {
		name = defaultDBFile
	}
	if filepath.IsAbs(name) {
		return name, nil
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
