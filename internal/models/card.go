package models

import (
	"github.com/shopspring/decimal"
)

// Card is a linked payment method as listed by GET /api/cards/
type Card struct {
	ID            ID              `json:"id" yaml:"id"`
	CardHolder    string          `json:"cardHolder" yaml:"card_holder"`
	CardNumber    string          `json:"cardNumber" yaml:"card_number"`
	ExpiryDate    string          `json:"expiryDate" yaml:"expiry_date"`
	CardType      string          `json:"cardType" yaml:"card_type"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance"`
	BankName      string          `json:"bankName,omitempty" yaml:"bank_name,omitempty"`
	RewardsPoints int             `json:"rewardsPoints" yaml:"rewards_points"`
	CardNetwork   string          `json:"cardNetwork,omitempty" yaml:"card_network,omitempty"`
}

// MaskedNumber shows only the last four digits
func (c Card) MaskedNumber() string {
	if len(c.CardNumber) <= 4 {
		return c.CardNumber
	}
	return "**** " + c.CardNumber[len(c.CardNumber)-4:]
}

// CardsResponse is the body of GET /api/cards/
type CardsResponse struct {
	Cards []Card `json:"cards"`
}

// CardTransaction is a transaction embedded in card details
type CardTransaction struct {
	ID        ID              `json:"id" yaml:"id"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	Merchant  string          `json:"merchant" yaml:"merchant"`
	Category  string          `json:"category" yaml:"category"`
	Status    string          `json:"status" yaml:"status"`
	CreatedAt string          `json:"createdAt" yaml:"created_at"`
}

// SpendLimits holds a ceiling and what is left of it
type SpendLimits struct {
	Daily   decimal.Decimal `json:"daily" yaml:"daily"`
	Monthly decimal.Decimal `json:"monthly" yaml:"monthly"`
}

// CardLimits are the card's configured and remaining limits
type CardLimits struct {
	Daily     decimal.Decimal `json:"daily" yaml:"daily"`
	Monthly   decimal.Decimal `json:"monthly" yaml:"monthly"`
	Remaining SpendLimits     `json:"remaining" yaml:"remaining"`
}

// CardDetails is the body of GET /api/cards/{id}
type CardDetails struct {
	Card         `yaml:",inline"`
	Transactions []CardTransaction `json:"transactions" yaml:"transactions"`
	Limits       CardLimits        `json:"limits" yaml:"limits"`
}
