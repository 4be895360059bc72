package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finsec/cli/cmd/analytics"
	"github.com/finsec/cli/cmd/auth"
	"github.com/finsec/cli/cmd/bills"
	"github.com/finsec/cli/cmd/cards"
	"github.com/finsec/cli/cmd/config"
	"github.com/finsec/cli/cmd/contacts"
	"github.com/finsec/cli/cmd/home"
	"github.com/finsec/cli/cmd/notifications"
	"github.com/finsec/cli/cmd/profile"
	"github.com/finsec/cli/cmd/raw"
	"github.com/finsec/cli/cmd/transactions"
	"github.com/finsec/cli/cmd/transfer"
	"github.com/finsec/cli/internal/app"
	appConfig "github.com/finsec/cli/internal/config"
	"github.com/finsec/cli/internal/utils"
)

var (
	cfgFile string
	debug   bool
	output  string
	server  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finsec",
	Short: "Finsec CLI - Command-line client for Finsec banking",
	Long: `Finsec CLI gives command-line access to your Finsec account: sign in with
two-factor authentication, review cards, transactions and bills, pay bills and
move money with the same safety checks as the mobile app.

The CLI talks to the Finsec banking API over HTTPS. The session token is kept in
the configuration file so later commands stay signed in.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize configuration
		if err := appConfig.Initialize(cfgFile); err != nil {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}
		if debug {
			appConfig.SetDebug(true)
		}

		if output != "" {
			if !validFormat(output) {
				return utils.NewValidationError("output", "must be table, json, json-compact, yaml or text")
			}
			appConfig.SetOutputFormat(output)
		}

		a := app.New(appConfig.Get())

		// Server override applies to this invocation only and is never saved
		if server != "" {
			if err := utils.ValidateURL(server); err != nil {
				return err
			}
			a.API.BaseURL = strings.TrimRight(server, "/")
		}

		cmd.SetContext(app.NewContext(cmd.Context(), a))
		return nil
	},
}

// Execute adds all child commands to the root command and runs it with ctx.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func validFormat(f string) bool {
	switch f {
	case "table", "json", "json-compact", "yaml", "text":
		return true
	}
	return false
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.finsec.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format (table, json, json-compact, yaml, text)")
	rootCmd.PersistentFlags().StringVar(&server, "server", "", "API base URL for this invocation")

	// Add subcommands
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(profile.ProfileCmd)
	rootCmd.AddCommand(home.HomeCmd)
	rootCmd.AddCommand(cards.CardsCmd)
	rootCmd.AddCommand(transactions.TransactionsCmd)
	rootCmd.AddCommand(bills.BillsCmd)
	rootCmd.AddCommand(transfer.TransferCmd)
	rootCmd.AddCommand(contacts.ContactsCmd)
	rootCmd.AddCommand(analytics.AnalyticsCmd)
	rootCmd.AddCommand(notifications.NotificationsCmd)
	rootCmd.AddCommand(config.ConfigCmd)
	rootCmd.AddCommand(raw.RawCmd)
}
