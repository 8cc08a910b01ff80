// Module commands for the breathcheck CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var (
	modulesSetStatus  string
	modulesSetPercent int
	modulesDataMerge  string
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Work through the six-module learning program",
}

var modulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List program modules with unlock status",
	Args:  cobra.NoArgs,
	RunE:  runModulesList,
}

var modulesSetCmd = &cobra.Command{
	Use:   "set <module-id>",
	Short: "Update a module's status and progress",
	Long: `Set writes the status and progress percent for one module. Status is
one of LOCKED, UNLOCKED, COMPLETE. Completing a module stamps its
completion time once; later writes keep the original stamp.

Example:
  breathcheck modules set module_1 --status COMPLETE
  breathcheck modules set module_2 --status UNLOCKED --percent 40`,
	Args: cobra.ExactArgs(1),
	RunE: runModulesSet,
}

var modulesRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the module unlock chain",
	Long: `Repair seeds missing progress rows and fixes unlock state so the first
module is open, modules after a completed one are open, and orphaned
unlocks are relocked. Completed modules are never touched.`,
	Args: cobra.NoArgs,
	RunE: runModulesRepair,
}

var modulesDataCmd = &cobra.Command{
	Use:   "data <module-id>",
	Short: "Show or update saved module work",
	Long: `Data prints the saved workbook state for one module. With --merge the
given JSON object is merged into the saved state key by key and the
result printed.

Example:
  breathcheck modules data module_1
  breathcheck modules data module_1 --merge '{"worksheet":{"step":2}}'`,
	Args: cobra.ExactArgs(1),
	RunE: runModulesData,
}

func init() {
	modulesSetCmd.Flags().StringVar(&modulesSetStatus, "status", "", "module status (required)")
	modulesSetCmd.Flags().IntVar(&modulesSetPercent, "percent", 0, "progress percent 0-100")
	_ = modulesSetCmd.MarkFlagRequired("status")

	modulesDataCmd.Flags().StringVar(&modulesDataMerge, "merge", "", "JSON object to merge into the saved state")

	modulesCmd.AddCommand(modulesListCmd)
	modulesCmd.AddCommand(modulesSetCmd)
	modulesCmd.AddCommand(modulesRepairCmd)
	modulesCmd.AddCommand(modulesDataCmd)
}

func runModulesList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "modules list:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	rows, err := a.learning.ListProgress()
	if err != nil {
		fmt.Fprintln(os.Stderr, "list progress:", err)
		os.Exit(exitSysError)
	}
	byModule := make(map[string]*types.ModuleProgress, len(rows))
	for _, row := range rows {
		byModule[row.ModuleID] = row
	}

	if flagJSON {
		type moduleRow struct {
			ID          string
			Title       string
			Status      string
			Percent     int
			CompletedAt string
		}
		out := make([]moduleRow, 0, len(types.Modules()))
		for _, info := range types.Modules() {
			r := moduleRow{ID: info.ID, Title: info.Title, Status: types.StatusLocked}
			if row := byModule[info.ID]; row != nil {
				r.Status = types.NormalizeStatus(row.Status)
				r.Percent = row.ProgressPercent
				if row.CompletedAt != nil {
					r.CompletedAt = row.CompletedAt.Format(types.DateLayout)
				}
			}
			out = append(out, r)
		}
		return printJSON(out)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPROGRESS\tCOMPLETED")
	fmt.Fprintln(w, "--\t-----\t------\t--------\t---------")
	for _, info := range types.Modules() {
		status := types.StatusLocked
		percent := 0
		completed := ""
		if row := byModule[info.ID]; row != nil {
			status = types.NormalizeStatus(row.Status)
			percent = row.ProgressPercent
			if row.CompletedAt != nil {
				completed = row.CompletedAt.Format(types.DateLayout)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%s\n", info.ID, truncate(info.Title, 40), status, percent, completed)
	}
	w.Flush()
	return nil
}

func runModulesSet(cmd *cobra.Command, args []string) error {
	moduleID := args[0]

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "modules set:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	percent := modulesSetPercent
	if !cmd.Flags().Changed("percent") {
		// Without an explicit percent, completion means done and other
		// statuses keep whatever the row already has.
		if existing, err := a.learning.Progress(moduleID); err == nil && existing != nil {
			percent = existing.ProgressPercent
		}
		if norm, err := types.ParseStatus(modulesSetStatus); err == nil && norm == types.StatusComplete {
			percent = 100
		}
	}

	row, err := a.learning.UpdateProgress(moduleID, modulesSetStatus, percent)
	if err != nil {
		if errors.Is(err, types.ErrUnknownModule) || errors.Is(err, types.ErrInvalidStatus) {
			fmt.Fprintln(os.Stderr, "modules set:", err)
			os.Exit(exitUserError)
		}
		fmt.Fprintln(os.Stderr, "modules set:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		return printJSON(row)
	}

	fmt.Printf("Module %s is now %s (%d%%)\n", row.ModuleID, row.Status, row.ProgressPercent)
	return nil
}

func runModulesRepair(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "modules repair:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	if err := a.learning.RepairUnlocks(types.ModuleIDs()); err != nil {
		fmt.Fprintln(os.Stderr, "modules repair:", err)
		os.Exit(exitSysError)
	}

	fmt.Println("Repaired module unlock chain")
	return nil
}

func runModulesData(cmd *cobra.Command, args []string) error {
	moduleID := args[0]
	if !types.KnownModule(moduleID) {
		fmt.Fprintf(os.Stderr, "modules data: unknown module %q\n", moduleID)
		os.Exit(exitUserError)
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "modules data:", err)
		os.Exit(exitSysError)
	}
	defer a.close()

	if modulesDataMerge != "" {
		patch, err := parsePayloadFlag(modulesDataMerge)
		if err != nil {
			fmt.Fprintln(os.Stderr, "modules data:", err)
			os.Exit(exitUserError)
		}
		merged, err := a.modules.Update(moduleID, patch)
		if err != nil {
			fmt.Fprintln(os.Stderr, "save module data:", err)
			os.Exit(exitSysError)
		}
		return printJSON(merged)
	}

	data, err := a.modules.Data(moduleID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load module data:", err)
		os.Exit(exitSysError)
	}
	if data == nil {
		fmt.Printf("No data saved for %s.\n", moduleID)
		return nil
	}
	return printJSON(data)
}
