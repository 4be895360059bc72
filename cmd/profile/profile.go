package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/session"
)

// ProfileCmd represents the profile command
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile commands",
	Long:  `View and update the profile of the signed-in user.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Long:  "Show the cached profile, refreshed from the server unless --cached is set",
	RunE:  runShow,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	Long: `Update profile fields. Only the flags you pass are changed; pass an empty
value to clear an optional field such as --phone "".`,
	Example: `  finsec profile update --preferred-name Jay
  finsec profile update --phone "+1 555 0100" --address "1 Main St"`,
	RunE: runUpdate,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload your profile from the server",
	RunE:  runRefresh,
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	if a.Session.State() != session.Authenticated {
		return session.ErrNotAuthenticated
	}

	cached, _ := cmd.Flags().GetBool("cached")
	if !cached {
		a.Session.RefreshProfile(cmd.Context())
	}
	return format.Print(format.ProfileView(a.Session.Profile()))
}

func runRefresh(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	if err := a.Session.ReloadProfile(cmd.Context()); err != nil {
		return fmt.Errorf("failed to refresh profile: %w", err)
	}
	format.PrintSuccess("✓ Profile refreshed")
	return format.Print(format.ProfileView(a.Session.Profile()))
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	var patch models.ProfilePatch
	flags := cmd.Flags()
	for name, dst := range map[string]**string{
		"first-name":     &patch.FirstName,
		"last-name":      &patch.LastName,
		"preferred-name": &patch.PreferredName,
		"phone":          &patch.Phone,
		"address":        &patch.Address,
	} {
		if !flags.Changed(name) {
			continue
		}
		value, _ := flags.GetString(name)
		*dst = &value
	}

	message, err := a.Session.UpdateProfile(cmd.Context(), patch)
	if err != nil {
		return err
	}
	if message == "" {
		message = "Profile updated successfully"
	}
	format.PrintSuccess("✓ %s", message)
	return format.Print(format.ProfileView(a.Session.Profile()))
}

func init() {
	showCmd.Flags().Bool("cached", false, "Skip the server refresh")

	updateCmd.Flags().String("first-name", "", "First name")
	updateCmd.Flags().String("last-name", "", "Last name")
	updateCmd.Flags().String("preferred-name", "", "Name shown in greetings")
	updateCmd.Flags().String("phone", "", "Phone number")
	updateCmd.Flags().String("address", "", "Postal address")

	ProfileCmd.AddCommand(showCmd)
	ProfileCmd.AddCommand(updateCmd)
	ProfileCmd.AddCommand(refreshCmd)
}
