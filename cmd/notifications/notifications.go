package notifications

import (
	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/models"
)

// NotificationsCmd represents the notifications command
var NotificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Notification commands",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE:  runList,
}

var readCmd = &cobra.Command{
	Use:   "read <notification-id>...",
	Short: "Mark notifications as read",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRead,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	items, err := a.Session.Notifications(cmd.Context())
	if err != nil {
		return err
	}
	if unread, _ := cmd.Flags().GetBool("unread"); unread {
		filtered := items[:0:0]
		for _, n := range items {
			if !n.Read {
				filtered = append(filtered, n)
			}
		}
		items = filtered
	}
	if len(items) == 0 {
		format.PrintInfo("No notifications")
		return nil
	}
	return format.Print(format.NotificationList(items))
}

func runRead(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	for _, id := range args {
		if err := a.Session.MarkNotificationRead(cmd.Context(), models.ID(id)); err != nil {
			return err
		}
		format.PrintSuccess("✓ Notification %s marked as read", id)
	}
	return nil
}

func init() {
	listCmd.Flags().Bool("unread", false, "Only show unread notifications")

	NotificationsCmd.AddCommand(listCmd)
	NotificationsCmd.AddCommand(readCmd)
}
