package contacts

import (
	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
)

// ContactsCmd represents the contacts command
var ContactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Contact directory commands",
	Long: `The contact directory lives in the configuration file. Each contact carries
a status and an optional daily limit that transfers are checked against.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	if len(a.Config.Contacts) == 0 {
		format.PrintInfo("No contacts configured in %s", a.Config.Path())
		return nil
	}
	return format.Print(format.ContactList(a.Config.Contacts))
}

func init() {
	ContactsCmd.AddCommand(listCmd)
}
