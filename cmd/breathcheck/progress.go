// Progress command for the breathcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var progressDays int

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show program completion, tool usage, and engagement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "progress:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		completion, err := a.progress.Completion(types.ModuleIDs())
		if err != nil {
			fmt.Fprintln(os.Stderr, "compute completion:", err)
			os.Exit(exitSysError)
		}

		counts, err := a.progress.ToolCounts()
		if err != nil {
			fmt.Fprintln(os.Stderr, "count tool usage:", err)
			os.Exit(exitSysError)
		}

		engagement, err := a.progress.Engagement(progressDays)
		if err != nil {
			fmt.Fprintln(os.Stderr, "compute engagement:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(map[string]any{
				"completion": completion,
				"tool_usage": counts,
				"engagement": engagement,
			})
		}

		windowDays := int(engagement.EndDate.Sub(engagement.StartDate).Hours()/24) + 1
		fmt.Printf("Modules:      %d of %d complete (%d%%)\n",
			completion.CompletedModules, completion.TotalModules, completion.Percent)
		fmt.Printf("BreathCheck:  %d session(s)\n", counts.BreathCheckSessions)
		fmt.Printf("Thought logs: %d\n", counts.ThoughtLogEntries)
		fmt.Printf("Active days:  %d of last %d\n", engagement.ActiveDays, windowDays)
		fmt.Printf("Streak:       %d day(s)\n", engagement.StreakDays)
		return nil
	},
}

func init() {
	progressCmd.Flags().IntVar(&progressDays, "days", 0, "engagement window in days (0 = default week)")
}
