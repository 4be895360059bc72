package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContactStatus determines whether money can move to or from a contact
type ContactStatus string

const (
	ContactActive   ContactStatus = "active"
	ContactInactive ContactStatus = "inactive"
	ContactBlocked  ContactStatus = "blocked"
)

// Contact is a person the user sends money to or requests money from
type Contact struct {
	ID              string          `json:"id" yaml:"id" mapstructure:"id"`
	Name            string          `json:"name" yaml:"name" mapstructure:"name"`
	Account         string          `json:"account" yaml:"account" mapstructure:"account"`
	Status          ContactStatus   `json:"status" yaml:"status" mapstructure:"status"`
	DailyLimit      decimal.Decimal `json:"daily_limit" yaml:"daily_limit" mapstructure:"daily_limit"`
	Current         decimal.Decimal `json:"current" yaml:"current" mapstructure:"current"`
	LastRequestDate string          `json:"last_request_date,omitempty" yaml:"last_request_date,omitempty" mapstructure:"last_request_date"`
	// LastUsageDate is the day Current was accumulated on. Empty means Current has no
	// date and counts as today's usage.
	LastUsageDate string `json:"last_usage_date,omitempty" yaml:"last_usage_date,omitempty" mapstructure:"last_usage_date"`
}

// DateLayout is the layout of the contact's day fields
const DateLayout = "2006-01-02"

// HasLimit reports whether a daily limit is configured
func (c Contact) HasLimit() bool {
	return c.DailyLimit.IsPositive()
}

// UsedOn is the usage counted against the limit on the day of now. Usage recorded on
// an earlier day no longer counts.
func (c Contact) UsedOn(now time.Time) decimal.Decimal {
	if c.LastUsageDate == "" || c.LastUsageDate == now.Format(DateLayout) {
		return c.Current
	}
	return decimal.Zero
}
