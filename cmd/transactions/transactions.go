package transactions

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/movement"
	"github.com/finsec/cli/internal/session"
	"github.com/finsec/cli/internal/utils"
)

// TransactionsCmd represents the transactions command
var TransactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Transaction history commands",
	Long:  `Browse transaction history with paging, date range, type, amount and text filters.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Example: `  finsec transactions list --range month --type debit
  finsec transactions list --min 50 --max 500 --search coffee --page 2`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	q, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}

	page, err := a.Session.Transactions(cmd.Context(), q)
	if err != nil {
		return err
	}
	if len(page.Transactions) == 0 {
		format.PrintInfo("No transactions found")
		return nil
	}
	return format.Print(format.TransactionPageView(*page))
}

func queryFromFlags(cmd *cobra.Command) (q models.TransactionQuery, err error) {
	flags := cmd.Flags()
	q.Page, _ = flags.GetInt("page")
	q.Limit, _ = flags.GetInt("limit")
	q.DateRange, _ = flags.GetString("range")
	q.Type, _ = flags.GetString("type")
	q.Search, _ = flags.GetString("search")

	switch q.DateRange {
	case "", "all", "today", "week", "month":
	default:
		return q, utils.NewValidationError("range", "must be all, today, week or month")
	}
	switch q.Type {
	case "", "all", string(models.TransactionCredit), string(models.TransactionDebit):
	default:
		return q, utils.NewValidationError("type", "must be all, credit or debit")
	}
	if q.Page < 0 || q.Limit < 0 {
		return q, utils.NewValidationError("page", "page and limit must not be negative")
	}
	if q.Limit > session.MaxPageSize {
		format.PrintWarning("Limit capped at %d", session.MaxPageSize)
	}

	if q.MinAmount, err = amountFlag(cmd, "min"); err != nil {
		return q, err
	}
	if q.MaxAmount, err = amountFlag(cmd, "max"); err != nil {
		return q, err
	}
	return q, nil
}

// amountFlag returns nil when the flag was not given
func amountFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	amount, ok := movement.ParseAmount(raw)
	if !ok {
		return nil, utils.NewValidationError(name, "invalid amount")
	}
	return &amount, nil
}

func init() {
	listCmd.Flags().Int("page", 1, "Page number")
	listCmd.Flags().Int("limit", 10, "Transactions per page")
	listCmd.Flags().String("range", "all", "Date range: all, today, week, month")
	listCmd.Flags().String("type", "all", "Type: all, credit, debit")
	listCmd.Flags().String("min", "", "Minimum amount")
	listCmd.Flags().String("max", "", "Maximum amount")
	listCmd.Flags().String("search", "", "Match merchant or category")

	TransactionsCmd.AddCommand(listCmd)
}
