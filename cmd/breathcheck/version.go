// Version command for the breathcheck CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calmworks/breathcheck/pkg/breathcheck"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the breathcheck version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("breathcheck", breathcheck.Version)
	},
}
