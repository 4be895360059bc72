package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsec/cli/internal/models"
)

var fieldHeaders = []string{"Field", "Value"}

// ProfileView renders the cached profile
type ProfileView models.UserProfile

func (p ProfileView) Headers() []string { return fieldHeaders }

func (p ProfileView) Rows() [][]string {
	rows := [][]string{
		{"ID", p.ID.String()},
		{"Name", models.UserProfile(p).DisplayName()},
		{"First Name", p.FirstName},
		{"Last Name", p.LastName},
		{"Preferred Name", p.PreferredName},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Address", p.Address},
		{"Member Since", p.MemberSince},
		{"Status", p.Status},
		{"Notifications", strconv.Itoa(p.NotificationCount)},
	}
	for _, c := range p.Cards {
		rows = append(rows, []string{"Card " + c.ID.String(), models.FormatAmount(c.Balance)})
	}
	return rows
}

// CardList renders linked payment cards
type CardList []models.Card

func (l CardList) Headers() []string {
	return []string{"ID", "Card", "Holder", "Type", "Network", "Bank", "Expires", "Balance", "Points"}
}

func (l CardList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		rows = append(rows, []string{
			c.ID.String(),
			c.MaskedNumber(),
			c.CardHolder,
			c.CardType,
			c.CardNetwork,
			c.BankName,
			c.ExpiryDate,
			models.FormatAmount(c.Balance),
			strconv.Itoa(c.RewardsPoints),
		})
	}
	return rows
}

func (l CardList) Footer() string {
	total := decimal.Zero
	for _, c := range l {
		total = total.Add(c.Balance)
	}
	return "Total balance: " + models.FormatAmount(total)
}

// CardDetailsView renders one card with its limits
type CardDetailsView models.CardDetails

func (d CardDetailsView) Headers() []string { return fieldHeaders }

func (d CardDetailsView) Rows() [][]string {
	rows := [][]string{
		{"ID", d.ID.String()},
		{"Card", d.MaskedNumber()},
		{"Holder", d.CardHolder},
		{"Type", d.CardType},
		{"Network", d.CardNetwork},
		{"Bank", d.BankName},
		{"Expires", d.ExpiryDate},
		{"Balance", models.FormatAmount(d.Balance)},
		{"Rewards Points", strconv.Itoa(d.RewardsPoints)},
		{"Daily Limit", models.FormatAmount(d.Limits.Daily)},
		{"Remaining Today", models.FormatAmount(d.Limits.Remaining.Daily)},
		{"Monthly Limit", models.FormatAmount(d.Limits.Monthly)},
		{"Remaining This Month", models.FormatAmount(d.Limits.Remaining.Monthly)},
	}
	for _, t := range d.Transactions {
		rows = append(rows, []string{
			"Transaction " + t.ID.String(),
			fmt.Sprintf("%s  %s  %s", t.CreatedAt, t.Merchant, models.FormatAmount(t.Amount)),
		})
	}
	return rows
}

// TransactionPageView renders one page of history
type TransactionPageView models.TransactionPage

func (p TransactionPageView) Headers() []string {
	return []string{"Date", "Merchant", "Category", "Icon", "Amount", "Status", "Payment Method"}
}

func (p TransactionPageView) Rows() [][]string {
	rows := make([][]string, 0, len(p.Transactions))
	for _, t := range p.Transactions {
		rows = append(rows, []string{
			t.Date,
			t.Merchant,
			t.Category,
			models.CategoryStyle(t.Category).Icon,
			models.FormatAmount(t.SignedAmount()),
			t.Status,
			t.PaymentMethod,
		})
	}
	return rows
}

func (p TransactionPageView) Footer() string {
	pg := p.Pagination
	if pg.Pages == 0 {
		return ""
	}
	line := fmt.Sprintf("Page %d of %d (%d transactions)", pg.Page, pg.Pages, pg.Total)
	if pg.HasNext() {
		line += fmt.Sprintf(", next: --page %d", pg.Page+1)
	}
	return line
}

// BillList renders bills with the days left until each is due
type BillList []models.Bill

func (l BillList) Headers() []string {
	return []string{"ID", "Name", "Category", "Amount", "Due", "Days", "Status", "Autopay"}
}

func (l BillList) Rows() [][]string {
	now := time.Now()
	rows := make([][]string, 0, len(l))
	for _, b := range l {
		days := ""
		if b.Status != models.BillPaid && !b.Due().IsZero() {
			days = strconv.Itoa(b.DaysUntilDue(now))
		}
		rows = append(rows, []string{
			b.ID.String(),
			b.Name,
			b.Category,
			models.FormatAmount(b.Amount),
			b.DueDate,
			days,
			string(b.Status),
			yesNo(b.Autopay),
		})
	}
	return rows
}

func (l BillList) Footer() string {
	return "Upcoming total: " + models.FormatAmount(models.UpcomingTotal(l))
}

// SpendingView renders the spending breakdown
type SpendingView []models.SpendingCategory

func (v SpendingView) Headers() []string {
	return []string{"Category", "Amount", "Share", "Change", "Transactions", "Icon", "Color"}
}

func (v SpendingView) Rows() [][]string {
	rows := make([][]string, 0, len(v))
	for _, c := range v {
		style := models.CategoryStyle(c.Name)
		rows = append(rows, []string{
			c.Name,
			models.FormatAmount(c.Amount),
			c.Percentage.StringFixed(1) + "%",
			signedPercent(c.MonthlyChange),
			strconv.Itoa(c.Transactions),
			style.Icon,
			style.Color,
		})
	}
	return rows
}

func (v SpendingView) Footer() string {
	return "Total spent: " + models.FormatAmount(models.TotalSpent(v))
}

// NotificationList renders notifications, unread first marker
type NotificationList []models.Notification

func (l NotificationList) Headers() []string {
	return []string{"ID", "", "Title", "Message", "Type", "Date"}
}

func (l NotificationList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, n := range l {
		marker := "•"
		if n.Read {
			marker = ""
		}
		rows = append(rows, []string{n.ID.String(), marker, n.Title, n.Message, n.Type, n.CreatedAt})
	}
	return rows
}

func (l NotificationList) Footer() string {
	return fmt.Sprintf("%d unread", models.UnreadCount(l))
}

// ContactList renders the contact directory with remaining daily limits
type ContactList []models.Contact

func (l ContactList) Headers() []string {
	return []string{"ID", "Name", "Account", "Status", "Daily Limit", "Used Today", "Remaining", "Last Request"}
}

func (l ContactList) Rows() [][]string {
	now := time.Now()
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		limit, used, remaining := "", "", ""
		if c.HasLimit() {
			limit = models.FormatAmount(c.DailyLimit)
			today := c.UsedOn(now)
			used = models.FormatAmount(today)
			remaining = models.FormatAmount(c.DailyLimit.Sub(today))
		}
		rows = append(rows, []string{c.ID, c.Name, c.Account, string(c.Status), limit, used, remaining, c.LastRequestDate})
	}
	return rows
}

// Fields is an ordered list of name/value pairs for ad hoc summaries
type Fields []Field

// Field is one line of a Fields summary
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func (f Fields) Headers() []string { return fieldHeaders }

func (f Fields) Rows() [][]string {
	rows := make([][]string, 0, len(f))
	for _, field := range f {
		rows = append(rows, []string{field.Name, field.Value})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func signedPercent(d decimal.Decimal) string {
	s := d.StringFixed(1) + "%"
	if d.IsPositive() {
		return "+" + s
	}
	return s
}
