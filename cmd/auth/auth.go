package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/session"
	"github.com/finsec/cli/internal/utils"
)

// maxOTPAttempts bounds interactive verification code retries
const maxOTPAttempts = 3

// AuthCmd represents the auth command
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long: `Authentication commands for Finsec CLI.

This command group includes login with two-factor verification, logout,
session status and authenticator app enrollment.`,
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to Finsec",
	Long: `Authenticate with email and password. Accounts with two-factor
authentication are asked for the 6-digit code from their authenticator app.
Missing credentials are prompted for.`,
	RunE: runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from Finsec",
	Long:  "End the current session on the server and forget the saved token",
	RunE:  runLogout,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long:  "Display current authentication status and session information",
	RunE:  runStatus,
}

// setupMfaCmd represents the setup-mfa command
var setupMfaCmd = &cobra.Command{
	Use:   "setup-mfa",
	Short: "Enroll an authenticator app",
	Long: `Generate a two-factor secret for your account. Add the secret or the
otpauth URI to an authenticator app, then log in again with a verification code.`,
	RunE: runSetupMfa,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	otp, _ := cmd.Flags().GetString("otp")

	if a.Session.State() == session.Authenticated {
		return fmt.Errorf("already logged in as %s, run 'finsec auth logout' first", a.Session.Profile().Email)
	}

	if email == "" {
		if email, err = a.Prompt.Line("Email: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = a.Prompt.Secret("Password: "); err != nil {
			return err
		}
	}

	format.PrintInfo("Logging in as %s...", email)
	result, err := a.Session.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if result.State == session.MfaPending {
		format.PrintInfo("Two-factor authentication required")
		if err := verify(cmd, a, otp); err != nil {
			return err
		}
	}

	format.PrintSuccess("✓ Successfully logged in as %s", email)
	if result.MfaSetupRecommended {
		format.PrintWarning("Two-factor authentication is not enabled. Run 'finsec auth setup-mfa' to protect your account.")
	}
	return nil
}

// verify completes a pending login. A code given on the command line gets one attempt;
// prompted codes may be retried.
func verify(cmd *cobra.Command, a *app.App, otp string) error {
	if otp != "" {
		if err := a.Session.VerifyMfa(cmd.Context(), otp); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxOTPAttempts; attempt++ {
		code, err := a.Prompt.Secret("Verification code: ")
		if err != nil {
			return err
		}
		lastErr = a.Session.VerifyMfa(cmd.Context(), code)
		if lastErr == nil {
			return nil
		}

		var apiErr *utils.APIError
		if !utils.IsValidationError(lastErr) && !errors.As(lastErr, &apiErr) {
			return fmt.Errorf("verification failed: %w", lastErr)
		}
		if attempt < maxOTPAttempts {
			format.PrintError("%v", lastErr)
		}
	}
	return fmt.Errorf("verification failed after %d attempts: %w", maxOTPAttempts, lastErr)
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	if a.Session.State() != session.Authenticated {
		a.Session.SignOut()
		format.PrintInfo("Not logged in")
		return nil
	}

	email := a.Session.Profile().Email
	format.PrintInfo("Logging out %s...", email)
	a.Session.Logout(cmd.Context())

	format.PrintSuccess("✓ Successfully logged out")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	fields := format.Fields{
		{Name: "Status", Value: "Not logged in"},
		{Name: "Server", Value: a.Config.Server.URL},
	}
	if a.Session.State() != session.Authenticated {
		return format.Print(fields)
	}

	profile := a.Session.Profile()
	fields[0].Value = "Logged in"
	fields = append(fields,
		format.Field{Name: "Email", Value: profile.Email},
		format.Field{Name: "User ID", Value: profile.ID.String()},
	)

	info, err := a.Session.TokenInfo()
	if err != nil {
		a.Logger.Debug().Err(err).Msg("token is not a readable JWT")
		fields = append(fields, format.Field{Name: "Session", Value: "Active"})
		return format.Print(fields)
	}

	if info.SessionID != "" {
		fields = append(fields, format.Field{Name: "Session ID", Value: info.SessionID})
	}
	if !info.IssuedAt.IsZero() {
		fields = append(fields, format.Field{Name: "Issued", Value: info.IssuedAt.Local().Format(time.RFC1123)})
	}
	if !info.ExpiresAt.IsZero() {
		expires := info.ExpiresAt.Local().Format(time.RFC1123)
		if info.Expired(time.Now()) {
			expires += " (expired)"
		}
		fields = append(fields, format.Field{Name: "Expires", Value: expires})
	}
	return format.Print(fields)
}

func runSetupMfa(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	secret, err := a.Session.GenerateMfaSecret(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to set up two-factor authentication: %w", err)
	}

	if err := format.Print(format.Fields{
		{Name: "Secret", Value: secret.Secret},
		{Name: "URI", Value: secret.TOTPURI},
	}); err != nil {
		return err
	}

	// The next login must present a verification code
	a.Session.SignOut()
	format.PrintSuccess("✓ Two-factor authentication enabled")
	format.PrintInfo("Add the secret to your authenticator app, then run 'finsec auth login' again.")
	return nil
}

func init() {
	// Add login command flags
	loginCmd.Flags().StringP("email", "e", "", "Email address")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
	loginCmd.Flags().String("otp", "", "6-digit verification code for two-factor accounts")

	// Add subcommands
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(setupMfaCmd)
}
