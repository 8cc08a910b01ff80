// Coping tool commands for the breathcheck CLI.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var (
	breatheDuration int
	breatheCycles   int

	thoughtData      string
	thoughtSituation string
	thoughtText      string
	thoughtBalanced  string
	thoughtIntensity int
	thoughtRerate    int
	thoughtFeedback  bool

	entriesLimit int
	entriesTool  string
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Use the BreathCheck and thought log coping tools",
}

var toolsBreatheCmd = &cobra.Command{
	Use:   "breathe",
	Short: "Record a paced breathing session",
	Long: `Breathe records one BreathCheck tool session. Sessions count toward
daily engagement and the relaxation milestones.

Example:
  breathcheck tools breathe --duration 120 --cycles 10`,
	Args: cobra.NoArgs,
	RunE: runToolsBreathe,
}

var toolsThoughtCmd = &cobra.Command{
	Use:   "thought",
	Short: "Save a thought log entry",
	Long: `Thought saves one structured thought log entry. Fields can be given
individually or as a JSON object via --data; individual flags win.
With --feedback a short supportive reflection is streamed after saving
(requires AI to be configured, otherwise a built-in message is shown).

Example:
  breathcheck tools thought --situation "Team meeting" --thought "I'll say something wrong" --intensity 7
  breathcheck tools thought --data '{"situation":"Exam","emotions":"dread"}' --feedback`,
	Args: cobra.NoArgs,
	RunE: runToolsThought,
}

var toolsEntriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List saved tool entries",
	Args:  cobra.NoArgs,
	RunE:  runToolsEntries,
}

func init() {
	toolsBreatheCmd.Flags().IntVar(&breatheDuration, "duration", 0, "session length in seconds")
	toolsBreatheCmd.Flags().IntVar(&breatheCycles, "cycles", 0, "breath cycles completed")

	toolsThoughtCmd.Flags().StringVar(&thoughtData, "data", "", "entry fields as a JSON object")
	toolsThoughtCmd.Flags().StringVar(&thoughtSituation, "situation", "", "what was happening")
	toolsThoughtCmd.Flags().StringVar(&thoughtText, "thought", "", "the automatic thought")
	toolsThoughtCmd.Flags().StringVar(&thoughtBalanced, "balanced", "", "a balanced alternative thought")
	toolsThoughtCmd.Flags().IntVar(&thoughtIntensity, "intensity", 0, "emotion intensity 0-10")
	toolsThoughtCmd.Flags().IntVar(&thoughtRerate, "rerate", 0, "emotion intensity after reframing 0-10")
	toolsThoughtCmd.Flags().BoolVar(&thoughtFeedback, "feedback", false, "stream supportive feedback after saving")

	toolsEntriesCmd.Flags().IntVar(&entriesLimit, "limit", 0, "show only the most recent N entries (0 = all)")
	toolsEntriesCmd.Flags().StringVar(&entriesTool, "tool", "", "filter by tool name")

	toolsCmd.AddCommand(toolsBreatheCmd)
	toolsCmd.AddCommand(toolsThoughtCmd)
	toolsCmd.AddCommand(toolsEntriesCmd)
}

func runToolsBreathe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tools breathe:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	meta := types.Payload{}
	if breatheDuration > 0 {
		meta["duration_seconds"] = breatheDuration
	}
	if breatheCycles > 0 {
		meta["cycles"] = breatheCycles
	}

	usage, err := a.tools.RecordUsage(types.ToolBreathCheck, meta)
	if err != nil {
		fmt.Fprintln(os.Stderr, "record session:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		return printJSON(usage)
	}

	fmt.Printf("Recorded BreathCheck session at %s\n", usage.UsedAt.Format("15:04"))
	return nil
}

func runToolsThought(cmd *cobra.Command, args []string) error {
	entry, err := parsePayloadFlag(thoughtData)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tools thought:", err)
		os.Exit(exitUserError)
	}
	if thoughtSituation != "" {
		entry["situation"] = thoughtSituation
	}
	if thoughtText != "" {
		entry["automatic_thoughts"] = thoughtText
	}
	if thoughtBalanced != "" {
		entry["balanced_thought"] = thoughtBalanced
	}
	if cmd.Flags().Changed("intensity") {
		entry["emotion_intensity"] = thoughtIntensity
	}
	if cmd.Flags().Changed("rerate") {
		entry["emotion_rerate"] = thoughtRerate
	}
	if len(entry) == 0 {
		fmt.Fprintln(os.Stderr, "tools thought: give at least one field or --data")
		os.Exit(exitUserError)
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tools thought:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	saved, err := a.tools.CreateEntry(types.ToolThoughtLog, entry)
	if err != nil {
		fmt.Fprintln(os.Stderr, "save entry:", err)
		os.Exit(exitSysError)
	}

	if flagJSON && !thoughtFeedback {
		return printJSON(saved)
	}
	if !flagJSON {
		fmt.Printf("Saved thought log entry %d\n", saved.ID)
	}

	if thoughtFeedback {
		fmt.Println()
		err := a.insights.StreamThoughtLogFeedback(cmd.Context(), entry, func(token string) error {
			fmt.Print(token)
			return nil
		})
		fmt.Println()
		if err != nil {
			fmt.Fprintln(os.Stderr, "feedback:", err)
			os.Exit(exitSysError)
		}
	}
	return nil
}

func runToolsEntries(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tools entries:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	entries, err := a.tools.Entries()
	if err != nil {
		fmt.Fprintln(os.Stderr, "list entries:", err)
		os.Exit(exitSysError)
	}

	if entriesTool != "" {
		kept := entries[:0]
		for _, e := range entries {
			if e.ToolName == entriesTool {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if entriesLimit > 0 && len(entries) > entriesLimit {
		entries = entries[len(entries)-entriesLimit:]
	}

	if flagJSON {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No tool entries yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOOL\tCREATED\tDATA")
	fmt.Fprintln(w, "--\t----\t-------\t----")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			e.ID, e.ToolName, e.CreatedAt.Format("2006-01-02 15:04"), truncate(e.Data, 48))
	}
	w.Flush()

	fmt.Printf("Total: %d entr%s\n", len(entries), plural(len(entries), "y", "ies"))
	return nil
}
