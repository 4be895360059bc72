package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// The API compares amounts as JSON numbers; quoted decimals would be rejected.
	decimal.MarshalJSONWithoutQuotes = true
}

// ID is an identifier the API sends either as a JSON number (users) or a string (cards, bills).
type ID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as a plain string
func (id ID) String() string {
	return string(id)
}

// Pagination describes one page of a paginated listing
type Pagination struct {
	Page  int `json:"page" yaml:"page"`
	Pages int `json:"pages" yaml:"pages"`
	Total int `json:"total" yaml:"total"`
	Limit int `json:"limit" yaml:"limit"`
}

// HasNext reports whether another page follows this one
func (p Pagination) HasNext() bool {
	return p.Page < p.Pages
}

// MessageResponse is the body of endpoints that only acknowledge an action
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorBody is the shape of a non-2xx response. The API uses "error" and "details";
// some endpoints answer with "message" only.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Text picks the most specific human-readable message, or "" if there is none.
func (b ErrorBody) Text() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Error != "" && b.Details != "":
		return b.Error + ": " + b.Details
	case b.Error != "":
		return b.Error
	default:
		return b.Details
	}
}

// FormatAmount renders an amount the way the app displays it, e.g. "$1,250.50".
func FormatAmount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	var b bytes.Buffer
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}
