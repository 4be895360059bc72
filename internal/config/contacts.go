package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsec/cli/internal/models"
)

// Contact finds a contact by id or by case-insensitive name
func (c *Config) Contact(ref string) (models.Contact, bool) {
	ref = strings.TrimSpace(ref)
	for _, contact := range c.Contacts {
		if contact.ID == ref {
			return contact, true
		}
	}
	for _, contact := range c.Contacts {
		if strings.EqualFold(contact.Name, ref) {
			return contact, true
		}
	}
	return models.Contact{}, false
}

// RecordTransfer adds amount to the contact's usage for today and, for requests, marks
// the contact as requested-from today. Usage from an earlier day is dropped first, and
// contacts without a daily limit keep no usage. The caller saves the config.
func (c *Config) RecordTransfer(contactID string, amount decimal.Decimal, request bool, now time.Time) error {
	today := now.Format(models.DateLayout)
	for i := range c.Contacts {
		contact := &c.Contacts[i]
		if contact.ID != contactID {
			continue
		}
		if contact.HasLimit() {
			contact.Current = contact.UsedOn(now).Add(amount)
			contact.LastUsageDate = today
		}
		if request {
			contact.LastRequestDate = today
		}
		return nil
	}
	return fmt.Errorf("contact %q not found", contactID)
}
