package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the settlement state of a bill
type BillStatus string

const (
	BillPaid     BillStatus = "paid"
	BillUpcoming BillStatus = "upcoming"
	BillOverdue  BillStatus = "overdue"
)

// Bill is a payable bill
type Bill struct {
	ID       ID              `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Category string          `json:"category" yaml:"category"`
	DueDate  string          `json:"dueDate" yaml:"due_date"`
	Status   BillStatus      `json:"status" yaml:"status"`
	Autopay  bool            `json:"autopay" yaml:"autopay"`
}

// UnmarshalJSON also accepts the snake_case due_date some API builds send.
func (b *Bill) UnmarshalJSON(data []byte) error {
	type plain Bill
	var aux struct {
		plain
		LegacyDueDate string `json:"due_date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = Bill(aux.plain)
	if b.DueDate == "" {
		b.DueDate = aux.LegacyDueDate
	}
	return nil
}

// Due parses the due date; the zero time is returned when it is missing or malformed.
func (b Bill) Due() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, b.DueDate); err == nil {
			return t
		}
	}
	return time.Time{}
}

// DaysUntilDue counts whole days from now to the due date, negative when overdue.
func (b Bill) DaysUntilDue(now time.Time) int {
	due := b.Due()
	if due.IsZero() {
		return 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today).Hours() / 24)
}

// BillsResponse is the body of GET /api/bills
type BillsResponse struct {
	Bills []Bill `json:"bills"`
}

// UpcomingTotal sums the amounts of bills still to be paid
func UpcomingTotal(bills []Bill) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		if b.Status == BillUpcoming {
			total = total.Add(b.Amount)
		}
	}
	return total
}

// PayBillRequest is the body of POST /api/bills/pay
type PayBillRequest struct {
	BillID          ID              `json:"billId"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID ID              `json:"paymentMethodId"`
}

// PayBillResponse confirms a payment and carries the card's new balance
type PayBillResponse struct {
	Message       string          `json:"message" yaml:"message"`
	BillID        ID              `json:"billId" yaml:"bill_id"`
	Status        BillStatus      `json:"status" yaml:"status"`
	TransactionID ID              `json:"transaction_id" yaml:"transaction_id"`
	CardBalance   decimal.Decimal `json:"card_balance" yaml:"card_balance"`
}
