// Milestones command for the breathcheck CLI.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "Show achievement milestones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "milestones:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		rows, err := a.progress.Milestones(types.ModuleIDs())
		if err != nil {
			fmt.Fprintln(os.Stderr, "compute milestones:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(rows)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\tTITLE\tDESCRIPTION\tCOMPLETED")
		achieved := 0
		for _, m := range rows {
			marker := "[ ]"
			if m.Achieved {
				marker = "[x]"
				achieved++
			} else if m.Locked {
				marker = " - "
			}
			completed := ""
			if m.CompletedAt != nil {
				completed = m.CompletedAt.Format(types.DateLayout)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, m.Title, m.Description, completed)
		}
		w.Flush()

		fmt.Printf("Achieved: %d of %d\n", achieved, len(rows))
		return nil
	},
}
