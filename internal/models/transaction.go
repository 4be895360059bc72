package models

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is one entry of the transaction history
type Transaction struct {
	ID            ID              `json:"id" yaml:"id"`
	Type          TransactionType `json:"type" yaml:"type"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	Date          string          `json:"date" yaml:"date"`
	Category      string          `json:"category" yaml:"category"`
	Merchant      string          `json:"merchant" yaml:"merchant"`
	Status        string          `json:"status" yaml:"status"`
	PaymentMethod string          `json:"paymentMethod" yaml:"payment_method"`
}

// SignedAmount is negative for debits
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionPage is the body of GET /api/transactions/
type TransactionPage struct {
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
	Pagination   Pagination    `json:"pagination" yaml:"pagination"`
}

// TransactionQuery selects a page of the transaction history. Zero values are omitted
// and left to the server's defaults.
type TransactionQuery struct {
	Page      int
	Limit     int
	DateRange string // all, today, week, month
	Type      string // all, credit, debit
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Search    string
}

// Values encodes the query string
func (q TransactionQuery) Values() url.Values {
	v := url.Values{}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	if q.DateRange != "" && q.DateRange != "all" {
		v.Set("dateRange", q.DateRange)
	}
	if q.Type != "" && q.Type != "all" {
		v.Set("type", q.Type)
	}
	if q.MinAmount != nil {
		v.Set("minAmount", q.MinAmount.String())
	}
	if q.MaxAmount != nil {
		v.Set("maxAmount", q.MaxAmount.String())
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}
