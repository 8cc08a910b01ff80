// Insights commands for the breathcheck CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var (
	insightsShowLimit    int
	insightsFeedbackTool string
	insightsFeedbackData string
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate and read progress insights",
}

var insightsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an insight summary from your data",
	Long: `Generate builds a snapshot of your tracking, module, and tool data and
produces a three-part summary. With AI enabled and a key configured the
summary comes from the model; otherwise a built-in summary is used.
Either way the result is cached locally.`,
	Args: cobra.NoArgs,
	RunE: runInsightsGenerate,
}

var insightsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cached insight summaries",
	Args:  cobra.NoArgs,
	RunE:  runInsightsShow,
}

var insightsFeedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Stream supportive feedback for a tool entry",
	Long: `Feedback streams a short supportive reflection for a coping tool entry
given as a JSON object. Without a configured AI key a built-in message
is printed instead.

Example:
  breathcheck insights feedback --data '{"situation":"Crowded train","emotion_intensity":7,"emotion_rerate":4}'`,
	Args: cobra.NoArgs,
	RunE: runInsightsFeedback,
}

func init() {
	insightsShowCmd.Flags().IntVar(&insightsShowLimit, "limit", 1, "number of summaries, newest first")

	insightsFeedbackCmd.Flags().StringVar(&insightsFeedbackTool, "tool", types.ToolThoughtLog, "tool the entry belongs to")
	insightsFeedbackCmd.Flags().StringVar(&insightsFeedbackData, "data", "", "entry fields as a JSON object (required)")
	_ = insightsFeedbackCmd.MarkFlagRequired("data")

	insightsCmd.AddCommand(insightsGenerateCmd)
	insightsCmd.AddCommand(insightsShowCmd)
	insightsCmd.AddCommand(insightsFeedbackCmd)
}

func runInsightsGenerate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "insights generate:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	row, err := a.insights.Generate(cmd.Context())
	if err != nil {
		if errors.Is(err, types.ErrGenerationFailed) || errors.Is(err, types.ErrNoAPIKey) {
			fmt.Fprintln(os.Stderr, "insights generate:", err)
			fmt.Fprintln(os.Stderr, "Nothing was cached. Check the API key with \"breathcheck settings check\".")
			os.Exit(exitSysError)
		}
		fmt.Fprintln(os.Stderr, "insights generate:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"generated_at": row.GeneratedAt,
			"summary":      row.Summary,
		})
	}

	fmt.Printf("Generated %s\n\n%s\n", row.GeneratedAt.Format("2006-01-02 15:04"), row.Summary)
	return nil
}

func runInsightsShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "insights show:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	if insightsShowLimit <= 1 {
		row, err := a.insights.Latest()
		if err != nil {
			fmt.Fprintln(os.Stderr, "load insight:", err)
			os.Exit(exitSysError)
		}
		if row == nil {
			fmt.Println("No insights generated yet.")
			return nil
		}
		if flagJSON {
			return printJSON(map[string]any{
				"generated_at": row.GeneratedAt,
				"summary":      row.Summary,
			})
		}
		fmt.Printf("Generated: %s\n\n%s\n", row.GeneratedAt.Format("2006-01-02 15:04"), row.Summary)
		return nil
	}

	rows, err := a.insights.Recent(insightsShowLimit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load insights:", err)
		os.Exit(exitSysError)
	}
	if len(rows) == 0 {
		fmt.Println("No insights generated yet.")
		return nil
	}

	if flagJSON {
		out := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			out = append(out, map[string]any{
				"generated_at": row.GeneratedAt,
				"summary":      row.Summary,
			})
		}
		return printJSON(out)
	}

	for i, row := range rows {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Generated: %s\n%s\n", row.GeneratedAt.Format("2006-01-02 15:04"), row.Summary)
	}
	return nil
}

func runInsightsFeedback(cmd *cobra.Command, args []string) error {
	entry, err := parsePayloadFlag(insightsFeedbackData)
	if err != nil {
		fmt.Fprintln(os.Stderr, "insights feedback:", err)
		os.Exit(exitUserError)
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "insights feedback:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	err = a.feedback.Stream(cmd.Context(), insightsFeedbackTool, entry, func(token string) error {
		fmt.Print(token)
		return nil
	})
	fmt.Println()
	if err != nil {
		fmt.Fprintln(os.Stderr, "insights feedback:", err)
		os.Exit(exitSysError)
	}
	return nil
}
