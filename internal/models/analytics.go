package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SpendingCategory is one slice of the spending breakdown
type SpendingCategory struct {
	Name          string          `json:"name" yaml:"name"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	Percentage    decimal.Decimal `json:"percentage" yaml:"percentage"`
	MonthlyChange decimal.Decimal `json:"monthlyChange" yaml:"monthly_change"`
	Transactions  int             `json:"transactions" yaml:"transactions"`
}

// SpendingResponse is the body of GET /api/analytics/spending
type SpendingResponse struct {
	Categories []SpendingCategory `json:"categories"`
}

// TotalSpent sums the category amounts
func TotalSpent(categories []SpendingCategory) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.Amount)
	}
	return total
}

// Style is the color and icon a category is rendered with
type Style struct {
	Color string `json:"color" yaml:"color"`
	Icon  string `json:"icon" yaml:"icon"`
}

var defaultStyle = Style{Color: "#8E8E93", Icon: "Wallet"}

var categoryStyles = map[string]Style{
	"shopping":           {Color: "#007AFF", Icon: "ShoppingBag"},
	"dining":             {Color: "#FF3B30", Icon: "Coffee"},
	"food & dining":      {Color: "#FF3B30", Icon: "Coffee"},
	"entertainment":      {Color: "#5856D6", Icon: "Film"},
	"travel":             {Color: "#007AFF", Icon: "Plane"},
	"transportation":     {Color: "#FF9500", Icon: "Car"},
	"utilities":          {Color: "#FF9500", Icon: "Building2"},
	"healthcare":         {Color: "#34C759", Icon: "Gift"},
	"groceries":          {Color: "#34C759", Icon: "ShoppingBag"},
	"electronics":        {Color: "#5856D6", Icon: "Smartphone"},
	"fitness":            {Color: "#FF3B30", Icon: "Dumbbell"},
	"health & fitness":   {Color: "#FF3B30", Icon: "Dumbbell"},
	"education":          {Color: "#007AFF", Icon: "Book"},
	"internet":           {Color: "#5856D6", Icon: "Wifi"},
	"phone":              {Color: "#34C759", Icon: "Smartphone"},
	"telecommunications": {Color: "#34C759", Icon: "Smartphone"},
	"housing":            {Color: "#007AFF", Icon: "Home"},
	"insurance":          {Color: "#FF2D55", Icon: "Shield"},
	"loans":              {Color: "#AF52DE", Icon: "Landmark"},
	"credit cards":       {Color: "#FF3B30", Icon: "CreditCard"},
	"income":             {Color: "#34C759", Icon: "ArrowDownLeft"},
}

// CategoryStyle looks a category up case-insensitively; unknown categories get the
// neutral wallet style.
func CategoryStyle(category string) Style {
	if s, ok := categoryStyles[strings.ToLower(strings.TrimSpace(category))]; ok {
		return s
	}
	return defaultStyle
}
