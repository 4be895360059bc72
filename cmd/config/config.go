package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	appConfig "github.com/finsec/cli/internal/config"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/models"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "CLI configuration commands",
	Long: `CLI configuration commands for Finsec CLI.

This command group shows the current configuration, changes single settings
and prints the location of the configuration file.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runShow,
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: "Change a setting and save it. Valid keys:\n  " +
		strings.Join(appConfig.Keys(), "\n  "),
	Example: `  finsec config set server.url https://api.finsec.example
  finsec config set limits.send_warn 500`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runPath,
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	cfg := a.Config
	policy := cfg.Policy()

	session := "none"
	if cfg.Session.Token != "" {
		session = fmt.Sprintf("%s (token %s)", cfg.Session.Email, maskToken(cfg.Session.Token))
	}

	return format.Print(format.Fields{
		{Name: "File", Value: cfg.Path()},
		{Name: "server.url", Value: cfg.Server.URL},
		{Name: "server.timeout", Value: cfg.Server.Timeout.String()},
		{Name: "format.default", Value: cfg.Format.Default},
		{Name: "format.colors", Value: fmt.Sprint(cfg.Format.Colors)},
		{Name: "log.level", Value: cfg.Log.Level},
		{Name: "limits.send_warn", Value: models.FormatAmount(policy.SendWarn)},
		{Name: "limits.request_warn", Value: models.FormatAmount(policy.RequestWarn)},
		{Name: "limits.topup_warn", Value: models.FormatAmount(policy.TopUpWarn)},
		{Name: "limits.request_min", Value: models.FormatAmount(policy.RequestMin)},
		{Name: "limits.topup_min", Value: models.FormatAmount(policy.TopUpMin)},
		{Name: "contacts", Value: fmt.Sprint(len(cfg.Contacts))},
		{Name: "session", Value: session},
	})
}

func runSet(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	if err := a.Config.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := a.Config.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	format.PrintSuccess("✓ %s set to %s", args[0], args[1])
	return nil
}

func runPath(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	fmt.Println(a.Config.Path())
	return nil
}

// maskToken keeps the last four characters
func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "…" + token[len(token)-4:]
}

func init() {
	ConfigCmd.AddCommand(showCmd)
	ConfigCmd.AddCommand(setCmd)
	ConfigCmd.AddCommand(pathCmd)
}
