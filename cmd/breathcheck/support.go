// Support network commands for the breathcheck CLI.
package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	contactName  string
	contactPhone string
	contactNote  string

	resourceTitle   string
	resourceContact string
	resourceNote    string
)

var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "Manage personal support contacts and help resources",
}

var supportContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage support contacts",
}

var supportResourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Manage help resources",
}

var supportContactAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a support contact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "support contact add:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		contact, err := a.support.AddContact(contactName, contactPhone, contactNote)
		if err != nil {
			fmt.Fprintln(os.Stderr, "add contact:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(contact)
		}
		fmt.Printf("Added contact %d: %s\n", contact.ID, contact.Name)
		return nil
	},
}

var supportContactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List support contacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "support contact list:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		contacts, err := a.support.Contacts()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list contacts:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(contacts)
		}

		if len(contacts) == 0 {
			fmt.Println("No support contacts yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPHONE\tNOTE")
		fmt.Fprintln(w, "--\t----\t-----\t----")
		for _, c := range contacts {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, truncate(c.Note, 40))
		}
		w.Flush()
		return nil
	},
}

var supportContactRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a support contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "support contact remove: invalid id %q\n", args[0])
			os.Exit(exitUserError)
		}

		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "support contact remove:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		if err := a.support.RemoveContact(id); err != nil {
			fmt.Fprintln(os.Stderr, "remove contact:", err)
			os.Exit(exitSysError)
		}
		fmt.Printf("Removed contact %d\n", id)
		return nil
	},
}

var supportResourceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a help resource",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "support resource add:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		resource, err := a.support.AddResource(resourceTitle, resourceContact, resourceNote)
		if err != nil {
			fmt.Fprintln(os.Stderr, "add resource:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(resource)
		}
		fmt.Printf("Added resource %d: %s\n", resource.ID, resource.Title)
		return nil
	},
}

var supportResourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List help resources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "support resource list:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		resources, err := a.support.Resources()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list resources:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return printJSON(resources)
		}

		if len(resources) == 0 {
			fmt.Println("No help resources yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCONTACT\tNOTE")
		fmt.Fprintln(w, "--\t-----\t-------\t----")
		for _, r := range resources {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, truncate(r.Title, 40), r.Contact, truncate(r.Note, 40))
		}
		w.Flush()
		return nil
	},
}

var supportResourceRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a help resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "support resource remove: invalid id %q\n", args[0])
			os.Exit(exitUserError)
		}

		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "support resource remove:", err)
			os.Exit(exitSysError)
		}
		defer a.close()

		if err := a.support.RemoveResource(id); err != nil {
			fmt.Fprintln(os.Stderr, "remove resource:", err)
			os.Exit(exitSysError)
		}
		fmt.Printf("Removed resource %d\n", id)
		return nil
	},
}

func init() {
	supportContactAddCmd.Flags().StringVar(&contactName, "name", "", "contact name (required)")
	supportContactAddCmd.Flags().StringVar(&contactPhone, "phone", "", "phone number")
	supportContactAddCmd.Flags().StringVar(&contactNote, "note", "", "free-text note")
	_ = supportContactAddCmd.MarkFlagRequired("name")

	supportResourceAddCmd.Flags().StringVar(&resourceTitle, "title", "", "resource title (required)")
	supportResourceAddCmd.Flags().StringVar(&resourceContact, "contact", "", "phone, URL, or address")
	supportResourceAddCmd.Flags().StringVar(&resourceNote, "note", "", "free-text note")
	_ = supportResourceAddCmd.MarkFlagRequired("title")

	supportContactCmd.AddCommand(supportContactAddCmd)
	supportContactCmd.AddCommand(supportContactListCmd)
	supportContactCmd.AddCommand(supportContactRemoveCmd)

	supportResourceCmd.AddCommand(supportResourceAddCmd)
	supportResourceCmd.AddCommand(supportResourceListCmd)
	supportResourceCmd.AddCommand(supportResourceRemoveCmd)

	supportCmd.AddCommand(supportContactCmd)
	supportCmd.AddCommand(supportResourceCmd)
}
