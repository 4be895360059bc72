package bills

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/movement"
	"github.com/finsec/cli/internal/utils"
)

// BillsCmd represents the bills command
var BillsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Bill commands",
	Long:  `List bills and pay them from a linked card.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills",
	RunE:  runList,
}

var payCmd = &cobra.Command{
	Use:   "pay <bill>",
	Short: "Pay a bill",
	Long: `Pay a bill by id or name from one of your cards. Paid bills are refused;
the payment is confirmed before it is sent unless --yes is given.`,
	Example: `  finsec bills pay 3 --method 9b2c6f0e-1d3a-4c5b-8e7f-0a1b2c3d4e5f`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPay,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	bills, err := a.Session.Bills(cmd.Context())
	if err != nil {
		return err
	}
	if status, _ := cmd.Flags().GetString("status"); status != "" {
		bills = filterStatus(bills, models.BillStatus(status))
	}
	if len(bills) == 0 {
		format.PrintInfo("No bills found")
		return nil
	}
	return format.Print(format.BillList(bills))
}

func filterStatus(bills []models.Bill, status models.BillStatus) []models.Bill {
	out := bills[:0:0]
	for _, b := range bills {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

func runPay(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	method, _ := cmd.Flags().GetString("method")
	yes, _ := cmd.Flags().GetBool("yes")

	bills, err := a.Session.Bills(ctx)
	if err != nil {
		return err
	}
	bill, ok := findBill(bills, args[0])
	if !ok {
		return fmt.Errorf("bill %q not found", args[0])
	}

	if method == "" {
		cards, err := a.Session.Cards(ctx)
		if err != nil {
			return err
		}
		if len(cards) == 1 {
			method = cards[0].ID.String()
			format.PrintInfo("Paying from %s %s", cards[0].BankName, cards[0].MaskedNumber())
		}
	}

	decision, err := a.Config.Policy().Evaluate(movement.Request{
		Kind:         movement.KindBillPay,
		Amount:       bill.Amount.String(),
		Counterparty: movement.FromBill(bill),
	})
	if err != nil {
		return err
	}
	if decision.Blocked() {
		return &app.BlockedError{Decision: decision}
	}
	if err := utils.ValidatePaymentMethodID(method); err != nil {
		return err
	}

	question := fmt.Sprintf("Pay %s to %s?", models.FormatAmount(bill.Amount), bill.Name)
	if err := a.Settle(decision, question, yes); err != nil {
		return err
	}

	resp, decision, err := a.Session.PayBill(ctx, bill, method)
	if err != nil {
		return fmt.Errorf("payment failed: %w", err)
	}
	if decision.Blocked() {
		return &app.BlockedError{Decision: decision}
	}

	message := resp.Message
	if message == "" {
		message = "Payment successful"
	}
	format.PrintSuccess("✓ %s", message)
	return format.Print(format.Fields{
		{Name: "Bill", Value: bill.Name},
		{Name: "Amount", Value: models.FormatAmount(bill.Amount)},
		{Name: "Status", Value: string(resp.Status)},
		{Name: "Transaction", Value: resp.TransactionID.String()},
		{Name: "Card Balance", Value: models.FormatAmount(resp.CardBalance)},
	})
}

// findBill matches by id first, then by case-insensitive name
func findBill(bills []models.Bill, ref string) (models.Bill, bool) {
	for _, b := range bills {
		if b.ID.String() == ref {
			return b, true
		}
	}
	for _, b := range bills {
		if strings.EqualFold(b.Name, ref) {
			return b, true
		}
	}
	return models.Bill{}, false
}

func init() {
	listCmd.Flags().String("status", "", "Only show bills with this status (paid, upcoming, overdue)")

	addPayFlags(payCmd)

	BillsCmd.AddCommand(listCmd)
	BillsCmd.AddCommand(payCmd)
}

func addPayFlags(c *cobra.Command) {
	c.Flags().StringP("method", "m", "", "Card ID to pay from (defaults to your only card)")
	c.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
