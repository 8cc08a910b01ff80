// Export command for the breathcheck CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/types"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data to JSON or CSV",
	Long: `Export writes every table to disk with encrypted fields decrypted, so
the output is portable. JSON produces one file; CSV produces one file
per table next to the given path.

Example:
  breathcheck export --format json --out backup/breathcheck.json
  breathcheck export --format csv --out backup/breathcheck`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		paths, err := a.maint.ExportAll(exportFormat, exportOut)
		if err != nil {
			if errors.Is(err, types.ErrUnsupportedFormat) {
				fmt.Fprintln(os.Stderr, "export:", err)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(map[string]any{"files": paths})
		}

		fmt.Printf("Exported %d file(s):\n", len(paths))
		for _, p := range paths {
			fmt.Println(" ", p)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json or csv)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (required)")
	_ = exportCmd.MarkFlagRequired("out")
}
