// Track commands for the breathcheck CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var (
	trackDate    string
	trackMood    int
	trackAnxiety int
	trackStress  int
	trackTrigger string

	trackShowDate  string
	trackListLimit int
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track daily mood, anxiety, and stress",
}

var trackAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a daily check-in",
	Long: `Add saves the check-in for one calendar day. Scores run 0 to 10.
Logging the same day twice overwrites the earlier entry.

Example:
  breathcheck track add --mood 6 --anxiety 4 --stress 5
  breathcheck track add --date 2026-08-20 --mood 3 --anxiety 7 --stress 6 --trigger "work deadline"`,
	Args: cobra.NoArgs,
	RunE: runTrackAdd,
}

var trackShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one day's entry with weekly averages and streak",
	Args:  cobra.NoArgs,
	RunE:  runTrackShow,
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent check-ins",
	Args:  cobra.NoArgs,
	RunE:  runTrackList,
}

func init() {
	trackAddCmd.Flags().StringVar(&trackDate, "date", "", "calendar day YYYY-MM-DD (default: today)")
	trackAddCmd.Flags().IntVar(&trackMood, "mood", 0, "mood score 0-10 (required)")
	trackAddCmd.Flags().IntVar(&trackAnxiety, "anxiety", 0, "anxiety score 0-10 (required)")
	trackAddCmd.Flags().IntVar(&trackStress, "stress", 0, "stress score 0-10 (required)")
	trackAddCmd.Flags().StringVar(&trackTrigger, "trigger", "", "what set this off (stored encrypted)")
	_ = trackAddCmd.MarkFlagRequired("mood")
	_ = trackAddCmd.MarkFlagRequired("anxiety")
	_ = trackAddCmd.MarkFlagRequired("stress")

	trackShowCmd.Flags().StringVar(&trackShowDate, "date", "", "calendar day YYYY-MM-DD (default: today)")

	trackListCmd.Flags().IntVar(&trackListLimit, "limit", 0, "maximum number of entries (0 = service default)")

	trackCmd.AddCommand(trackAddCmd)
	trackCmd.AddCommand(trackShowCmd)
	trackCmd.AddCommand(trackListCmd)
}

// parseDayFlag parses a --date value, defaulting to the current day.
func parseDayFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	day, err := time.Parse(types.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return day, nil
}

func runTrackAdd(cmd *cobra.Command, args []string) error {
	day, err := parseDayFlag(trackDate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "track add:", err)
		os.Exit(exitUserError)
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "track add:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	entry, created, err := a.tracking.LogDay(day, trackMood, trackAnxiety, trackStress, trackTrigger)
	if err != nil {
		if errors.Is(err, types.ErrScoreOutOfRange) {
			fmt.Fprintln(os.Stderr, "track add:", err)
			os.Exit(exitUserError)
		}
		fmt.Fprintln(os.Stderr, "track add:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		return printJSON(map[string]any{"entry": entry, "created": created})
	}

	verb := "Updated"
	if created {
		verb = "Logged"
	}
	fmt.Printf("%s %s (mood %d, anxiety %d, stress %d)\n",
		verb, entry.Date.Format(types.DateLayout), entry.Mood, entry.Anxiety, entry.Stress)
	return nil
}

func runTrackShow(cmd *cobra.Command, args []string) error {
	day, err := parseDayFlag(trackShowDate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "track show:", err)
		os.Exit(exitUserError)
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "track show:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	entry, err := a.tracking.Day(day)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load entry:", err)
		os.Exit(exitSysError)
	}

	averages, err := a.tracking.WeeklyAverages()
	if err != nil {
		fmt.Fprintln(os.Stderr, "compute averages:", err)
		os.Exit(exitSysError)
	}

	streak, err := a.tracking.CurrentStreak()
	if err != nil {
		fmt.Fprintln(os.Stderr, "compute streak:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"entry":           entry,
			"weekly_averages": averages,
			"streak_days":     streak,
		})
	}

	if entry == nil {
		fmt.Printf("No entry for %s.\n", types.Day(day).Format(types.DateLayout))
	} else {
		fmt.Printf("Date:    %s\n", entry.Date.Format(types.DateLayout))
		fmt.Printf("Mood:    %d\n", entry.Mood)
		fmt.Printf("Anxiety: %d\n", entry.Anxiety)
		fmt.Printf("Stress:  %d\n", entry.Stress)
		if entry.Trigger != "" {
			fmt.Printf("Trigger: %s\n", entry.Trigger)
		}
	}

	if averages != nil {
		fmt.Printf("\nWeekly averages (%s to %s): mood %.1f, anxiety %.1f, stress %.1f\n",
			averages.StartDate.Format(types.DateLayout),
			averages.EndDate.Format(types.DateLayout),
			averages.MoodAvg, averages.AnxietyAvg, averages.StressAvg)
	} else {
		fmt.Println("\nNo check-ins in the last 7 days.")
	}
	fmt.Printf("Streak: %d day(s)\n", streak)
	return nil
}

func runTrackList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "track list:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	entries, err := a.tracking.Recent(trackListLimit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list entries:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No check-ins yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tMOOD\tANXIETY\tSTRESS\tTRIGGER")
	fmt.Fprintln(w, "----\t----\t-------\t------\t-------")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
			e.Date.Format(types.DateLayout), e.Mood, e.Anxiety, e.Stress, truncate(e.Trigger, 40))
	}
	w.Flush()

	fmt.Printf("Total: %d entr%s\n", len(entries), plural(len(entries), "y", "ies"))
	return nil
}

// plural picks a suffix by count.
func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
