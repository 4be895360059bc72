package cards

import (
	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/models"
)

// CardsCmd represents the cards command
var CardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Payment card commands",
	Long:  `List linked payment cards and show balances, limits and recent activity.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List payment cards",
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <card-id>",
	Short: "Show a payment card",
	Long:  "Show one card with its daily and monthly limits and recent transactions",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	cards, err := a.Session.Cards(cmd.Context())
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		format.PrintInfo("No cards linked to this account")
		return nil
	}
	return format.Print(format.CardList(cards))
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	details, err := a.Session.Card(cmd.Context(), models.ID(args[0]))
	if err != nil {
		return err
	}
	return format.Print(format.CardDetailsView(*details))
}

func init() {
	CardsCmd.AddCommand(listCmd)
	CardsCmd.AddCommand(showCmd)
}
