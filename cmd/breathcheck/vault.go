// Vault commands for the breathcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	vaultPassword string
	vaultYes      bool
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage the master password",
	Long: `Vault manages the master password that gates access to the app. The
password itself is never stored; only a salted hash goes to the system
keychain. Setting it also enables local field encryption.`,
}

var vaultSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the master password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(vaultPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vault set:", err)
			os.Exit(exitSysError)
		}
		if password == "" {
			fmt.Fprintln(os.Stderr, "vault set: password must not be empty")
			os.Exit(exitUserError)
		}

		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "vault set:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		if err := a.vault.SetMasterPassword(password); err != nil {
			fmt.Fprintln(os.Stderr, "vault set:", err)
			os.Exit(exitSysError)
		}

		fmt.Println("Master password set")
		_, banner := a.maint.EncryptionStatus()
		fmt.Println(banner)
		return nil
	},
}

var vaultVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a password against the stored master password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(vaultPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vault verify:", err)
			os.Exit(exitSysError)
		}

		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "vault verify:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		if !a.vault.VerifyMasterPassword(password) {
			fmt.Fprintln(os.Stderr, "Password does not match")
			os.Exit(exitUserError)
		}
		fmt.Println("Password verified")
		return nil
	},
}

var vaultDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the master password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("This removes the master password.", vaultYes) {
			fmt.Println("Cancelled")
			return nil
		}

		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "vault delete:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		a.vault.DeleteMasterPassword()
		fmt.Println("Master password removed")
		return nil
	},
}

func init() {
	vaultSetCmd.Flags().StringVar(&vaultPassword, "password", "", "password (prompted when omitted)")
	vaultVerifyCmd.Flags().StringVar(&vaultPassword, "password", "", "password (prompted when omitted)")
	vaultDeleteCmd.Flags().BoolVar(&vaultYes, "yes", false, "skip confirmation")

	vaultCmd.AddCommand(vaultSetCmd)
	vaultCmd.AddCommand(vaultVerifyCmd)
	vaultCmd.AddCommand(vaultDeleteCmd)
}
