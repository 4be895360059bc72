package transfer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/movement"
)

// TransferCmd represents the transfer command
var TransferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Money movement commands",
	Long: `Send money to a contact, request money from one, or add money from a card.

Every movement runs the same checks as the mobile app: blocked or inactive
contacts and exhausted daily limits are refused, large amounts and repeated
requests ask for confirmation.`,
}

var sendCmd = &cobra.Command{
	Use:     "send",
	Short:   "Send money to a contact",
	Example: `  finsec transfer send --to "Sarah Johnson" --amount 50`,
	RunE:    runSend,
}

var requestCmd = &cobra.Command{
	Use:     "request",
	Short:   "Request money from a contact",
	Example: `  finsec transfer request --from c2 --amount 25.50`,
	RunE:    runRequest,
}

var topupCmd = &cobra.Command{
	Use:     "topup",
	Short:   "Add money from a card",
	Example: `  finsec transfer topup --method 9b2c6f0e-1d3a-4c5b-8e7f-0a1b2c3d4e5f --amount 200`,
	RunE:    runTopUp,
}

func runSend(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	return moveWithContact(cmd, movement.KindSend, to)
}

func runRequest(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	return moveWithContact(cmd, movement.KindRequest, from)
}

// moveWithContact runs a send or request against the contact directory and records
// the contact's usage once the movement is accepted.
func moveWithContact(cmd *cobra.Command, kind movement.Kind, ref string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	if err := a.Session.RequireAuthenticated(); err != nil {
		return err
	}
	amount, _ := cmd.Flags().GetString("amount")
	yes, _ := cmd.Flags().GetBool("yes")

	var cp *movement.Counterparty
	var contact models.Contact
	if ref != "" {
		var ok bool
		if contact, ok = a.Config.Contact(ref); !ok {
			return fmt.Errorf("contact %q not found, see 'finsec contacts list'", ref)
		}
		cp = movement.FromContact(contact)
	}

	decision, err := a.Config.Policy().Evaluate(movement.Request{Kind: kind, Amount: amount, Counterparty: cp})
	if err != nil {
		return err
	}

	if decision.Blocked() {
		return &app.BlockedError{Decision: decision}
	}

	value, _ := movement.ParseAmount(amount)
	verb, prep := "Send", "to"
	if kind == movement.KindRequest {
		verb, prep = "Request", "from"
	}
	question := fmt.Sprintf("%s %s %s %s?", verb, models.FormatAmount(value), prep, contact.Name)
	if err := a.Settle(decision, question, yes); err != nil {
		return err
	}

	if err := a.Config.RecordTransfer(contact.ID, value, kind == movement.KindRequest, time.Now()); err != nil {
		return err
	}
	if err := a.Config.Save(); err != nil {
		return fmt.Errorf("failed to record %s: %w", kind, err)
	}
	a.Logger.Info().Str("kind", string(kind)).Str("contact", contact.ID).Str("amount", value.String()).Msg("movement recorded")

	updated, _ := a.Config.Contact(contact.ID)
	format.PrintSuccess("✓ %s of %s %s %s accepted", verb, models.FormatAmount(value), prep, contact.Name)
	return format.Print(receipt(kind, contact.Name, value, decision, updated))
}

func runTopUp(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	if err := a.Session.RequireAuthenticated(); err != nil {
		return err
	}
	ctx := cmd.Context()
	method, _ := cmd.Flags().GetString("method")
	amount, _ := cmd.Flags().GetString("amount")
	yes, _ := cmd.Flags().GetBool("yes")

	if method == "" {
		cards, err := a.Session.Cards(ctx)
		if err != nil {
			return err
		}
		if len(cards) == 1 {
			method = cards[0].ID.String()
		}
	}

	var cp *movement.Counterparty
	if method != "" {
		details, err := a.Session.Card(ctx, models.ID(method))
		if err != nil {
			return fmt.Errorf("failed to load card %s: %w", method, err)
		}
		cp = movement.FromCardDetails(*details)
	}

	decision, err := a.Config.Policy().Evaluate(movement.Request{Kind: movement.KindTopUp, Amount: amount, Counterparty: cp})
	if err != nil {
		return err
	}

	if decision.Blocked() {
		return &app.BlockedError{Decision: decision}
	}

	value, _ := movement.ParseAmount(amount)
	question := fmt.Sprintf("Add %s from %s?", models.FormatAmount(value), cp.Name)
	if err := a.Settle(decision, question, yes); err != nil {
		return err
	}

	a.Logger.Info().Str("kind", string(movement.KindTopUp)).Str("card", cp.ID).Str("amount", value.String()).Msg("movement accepted")
	format.PrintSuccess("✓ Top-up of %s from %s accepted", models.FormatAmount(value), cp.Name)
	return format.Print(receipt(movement.KindTopUp, cp.Name, value, decision, models.Contact{}))
}

func receipt(kind movement.Kind, name string, amount decimal.Decimal, d movement.Decision, contact models.Contact) format.Fields {
	fields := format.Fields{
		{Name: "Type", Value: string(kind)},
		{Name: "Counterparty", Value: name},
		{Name: "Amount", Value: models.FormatAmount(amount)},
		{Name: "Checks", Value: d.Outcome.String()},
	}
	if contact.HasLimit() {
		fields = append(fields, format.Field{
			Name:  "Remaining Today",
			Value: models.FormatAmount(contact.DailyLimit.Sub(contact.Current)),
		})
	}
	return fields
}

func init() {
	sendCmd.Flags().String("to", "", "Contact ID or name")
	requestCmd.Flags().String("from", "", "Contact ID or name")
	topupCmd.Flags().StringP("method", "m", "", "Card ID to fund from (defaults to your only card)")

	for _, c := range []*cobra.Command{sendCmd, requestCmd, topupCmd} {
		addMovementFlags(c)
		TransferCmd.AddCommand(c)
	}
}

func addMovementFlags(c *cobra.Command) {
	c.Flags().StringP("amount", "a", "", "Amount, e.g. 50 or 1,250.00")
	c.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
