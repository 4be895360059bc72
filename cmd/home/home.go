package home

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/session"
)

// recentLimit is how many transactions the dashboard shows
const recentLimit = 5

// HomeCmd represents the home command
var HomeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the account dashboard",
	Long: `Show balances, upcoming bills, recent transactions and unread
notifications in one view. The sections are fetched concurrently.`,
	RunE: runHome,
}

// Dashboard is the structured form of the home view
type Dashboard struct {
	Greeting      string               `json:"greeting" yaml:"greeting"`
	TotalBalance  decimal.Decimal      `json:"total_balance" yaml:"total_balance"`
	Cards         []models.Card        `json:"cards" yaml:"cards"`
	UpcomingBills []models.Bill        `json:"upcoming_bills" yaml:"upcoming_bills"`
	Recent        []models.Transaction `json:"recent_transactions" yaml:"recent_transactions"`
	Unread        int                  `json:"unread_notifications" yaml:"unread_notifications"`
	Profile       models.UserProfile   `json:"profile" yaml:"profile"`
}

func runHome(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	if a.Session.State() != session.Authenticated {
		return session.ErrNotAuthenticated
	}

	d, err := load(cmd, a.Session)
	if err != nil {
		return err
	}

	if format.Structured() {
		return format.Print(d)
	}

	fmt.Println(d.Greeting)
	if err := format.Print(format.Fields{
		{Name: "Total Balance", Value: models.FormatAmount(d.TotalBalance)},
		{Name: "Upcoming Bills", Value: models.FormatAmount(models.UpcomingTotal(d.UpcomingBills))},
		{Name: "Unread Notifications", Value: fmt.Sprint(d.Unread)},
	}); err != nil {
		return err
	}
	if len(d.Cards) > 0 {
		fmt.Println("\nCards")
		if err := format.Print(format.CardList(d.Cards)); err != nil {
			return err
		}
	}
	if len(d.UpcomingBills) > 0 {
		fmt.Println("\nUpcoming bills")
		if err := format.Print(format.BillList(d.UpcomingBills)); err != nil {
			return err
		}
	}
	if len(d.Recent) > 0 {
		fmt.Println("\nRecent transactions")
		return format.Print(format.TransactionPageView{Transactions: d.Recent})
	}
	return nil
}

// load fetches every section concurrently. A failed section fails the whole view,
// except the profile refresh which keeps the cached profile.
func load(cmd *cobra.Command, s *session.Manager) (*Dashboard, error) {
	var (
		d     Dashboard
		ctx   = cmd.Context()
		g, gc = errgroup.WithContext(ctx)
	)

	g.Go(func() error {
		s.RefreshProfile(gc)
		return nil
	})
	g.Go(func() error {
		cards, err := s.Cards(gc)
		if err != nil {
			return fmt.Errorf("cards: %w", err)
		}
		d.Cards = cards
		return nil
	})
	g.Go(func() error {
		bills, err := s.Bills(gc)
		if err != nil {
			return fmt.Errorf("bills: %w", err)
		}
		for _, b := range bills {
			if b.Status != models.BillPaid {
				d.UpcomingBills = append(d.UpcomingBills, b)
			}
		}
		return nil
	})
	g.Go(func() error {
		page, err := s.Transactions(gc, models.TransactionQuery{Page: 1, Limit: recentLimit})
		if err != nil {
			return fmt.Errorf("transactions: %w", err)
		}
		d.Recent = page.Transactions
		return nil
	})
	g.Go(func() error {
		items, err := s.Notifications(gc)
		if err != nil {
			return fmt.Errorf("notifications: %w", err)
		}
		d.Unread = models.UnreadCount(items)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.Profile = s.Profile()
	d.Greeting = Greeting(time.Now(), d.Profile.DisplayName())
	for _, c := range d.Cards {
		d.TotalBalance = d.TotalBalance.Add(c.Balance)
	}
	return &d, nil
}

// Greeting picks the salutation for the hour of now
func Greeting(now time.Time, name string) string {
	var part string
	switch h := now.Hour(); {
	case h < 12:
		part = "Good morning"
	case h < 18:
		part = "Good afternoon"
	default:
		part = "Good evening"
	}
	if name == "" {
		return part
	}
	return part + ", " + name
}
