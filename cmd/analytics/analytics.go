package analytics

import (
	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
)

// AnalyticsCmd represents the analytics command
var AnalyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Spending analytics commands",
}

var spendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "Show spending by category",
	Long:  "Show spending by category for the last week, month or year",
	RunE:  runSpending,
}

func runSpending(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	period, _ := cmd.Flags().GetString("period")
	categories, err := a.Session.Spending(cmd.Context(), period)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		format.PrintInfo("No spending this %s", period)
		return nil
	}
	return format.Print(format.SpendingView(categories))
}

func init() {
	spendingCmd.Flags().StringP("period", "p", "month", "Period: week, month, year")

	AnalyticsCmd.AddCommand(spendingCmd)
}
