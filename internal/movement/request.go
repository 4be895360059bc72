package movement

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsec/cli/internal/models"
)

// Kind identifies the money-movement flow
type Kind string

const (
	KindSend    Kind = "send"
	KindRequest Kind = "request"
	KindTopUp   Kind = "topup"
	KindBillPay Kind = "bill_pay"
)

// Valid reports whether k is a known flow
func (k Kind) Valid() bool {
	switch k {
	case KindSend, KindRequest, KindTopUp, KindBillPay:
		return true
	}
	return false
}

// Limit is a daily ceiling and how much of it is already used
type Limit struct {
	Daily   decimal.Decimal
	Current decimal.Decimal

	// UsageDay is the day Current was accumulated on; zero when Current is always
	// today's figure.
	UsageDay time.Time
}

// Remaining is what can still move today
func (l Limit) Remaining() decimal.Decimal {
	return l.Daily.Sub(l.Current)
}

// RemainingOn is Remaining with usage from a day other than now's dropped
func (l Limit) RemainingOn(now time.Time) decimal.Decimal {
	if !l.UsageDay.IsZero() && !sameDay(l.UsageDay, now) {
		return l.Daily
	}
	return l.Remaining()
}

// Counterparty is the other side of a movement: a contact, a payment card or a bill
type Counterparty struct {
	ID          string
	Name        string
	Status      models.ContactStatus
	BillStatus  models.BillStatus
	Limit       *Limit
	LastRequest time.Time
}

// Request is a proposed movement. Amount is the raw user input.
type Request struct {
	Kind         Kind
	Amount       string
	Counterparty *Counterparty
}

// FromContact builds the counterparty of a send or request flow
func FromContact(c models.Contact) *Counterparty {
	cp := &Counterparty{
		ID:     c.ID,
		Name:   c.Name,
		Status: c.Status,
	}
	if c.HasLimit() {
		cp.Limit = &Limit{Daily: c.DailyLimit, Current: c.Current, UsageDay: parseDay(c.LastUsageDate)}
	}
	cp.LastRequest = parseDay(c.LastRequestDate)
	return cp
}

// parseDay reads a contact day field in local time; the zero time when empty or malformed
func parseDay(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{models.DateLayout, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FromCard builds the counterparty of a top-up: the card funding it
func FromCard(c models.Card) *Counterparty {
	return &Counterparty{
		ID:     c.ID.String(),
		Name:   strings.TrimSpace(c.BankName + " " + c.MaskedNumber()),
		Status: models.ContactActive,
	}
}

// FromCardDetails is FromCard plus the card's daily limit
func FromCardDetails(d models.CardDetails) *Counterparty {
	cp := FromCard(d.Card)
	if d.Limits.Daily.IsPositive() {
		cp.Limit = &Limit{
			Daily:   d.Limits.Daily,
			Current: d.Limits.Daily.Sub(d.Limits.Remaining.Daily),
		}
	}
	return cp
}

// FromBill builds the counterparty of a bill payment
func FromBill(b models.Bill) *Counterparty {
	return &Counterparty{
		ID:         b.ID.String(),
		Name:       b.Name,
		Status:     models.ContactActive,
		BillStatus: b.Status,
	}
}

// ParseAmount reads a user-entered amount such as "1,250.50" or "$20".
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
