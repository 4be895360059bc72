package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsec/cli/internal/models"
)

func sampleCards() CardList {
	return CardList{
		{ID: "c1", CardHolder: "Jane Doe", CardNumber: "4111111111111111", CardType: "credit", Balance: decimal.RequireFromString("1250.5")},
		{ID: "c2", CardHolder: "Jane Doe", CardNumber: "5500000000000004", CardType: "debit", Balance: decimal.NewFromInt(100)},
	}
}

func TestTableFormatter_Tabular(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf, false).Format(sampleCards()))

	out := buf.String()
	assert.Contains(t, out, "**** 1111")
	assert.Contains(t, out, "$1,250.50")
	assert.Contains(t, out, "Total balance: $1,350.50")
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf, false).Format(CardList{}))
	assert.Equal(t, "No data to display\n", buf.String())
}

func TestTableFormatter_FallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf, false).Format(map[string]string{"status": "ok"}))
	assert.Equal(t, "status: ok\n", buf.String())
}

func TestJSONFormatter_KeepsWireShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, false).Format(sampleCards()))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "c1", decoded[0]["id"])
	assert.Equal(t, 1250.5, decoded[0]["balance"])
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	fields := Fields{{Name: "State", Value: "authenticated"}, {Name: "Email", Value: "jane@example.com"}, {Name: "Empty", Value: ""}}
	require.NoError(t, NewTextFormatter(&buf).Format(fields))

	out := buf.String()
	assert.Contains(t, out, "State:")
	assert.Contains(t, out, "authenticated")
	assert.NotContains(t, out, "Empty")
}

func TestGetFormatter_Unsupported(t *testing.T) {
	_, err := GetFormatter("xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSpendingView(t *testing.T) {
	view := SpendingView{
		{Name: "Dining", Amount: decimal.NewFromInt(200), Percentage: decimal.NewFromInt(40), MonthlyChange: decimal.NewFromInt(5)},
		{Name: "Pets", Amount: decimal.NewFromInt(300), Percentage: decimal.NewFromInt(60), MonthlyChange: decimal.NewFromInt(-2)},
	}
	rows := view.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Dining", "$200.00", "40.0%", "+5.0%", "0", "Coffee", "#FF3B30"}, rows[0])
	assert.Equal(t, "Wallet", rows[1][5])
	assert.Equal(t, "-2.0%", rows[1][3])
	assert.Equal(t, "Total spent: $500.00", view.Footer())
}

func TestBillList(t *testing.T) {
	bills := BillList{
		{ID: "b1", Name: "Power", Amount: decimal.NewFromInt(80), Status: models.BillUpcoming, DueDate: "2024-04-01"},
		{ID: "b2", Name: "Water", Amount: decimal.NewFromInt(20), Status: models.BillPaid, DueDate: "2024-04-05", Autopay: true},
	}
	rows := bills.Rows()
	assert.Equal(t, "", rows[1][5])
	assert.Equal(t, "yes", rows[1][7])
	assert.Equal(t, "Upcoming total: $80.00", bills.Footer())
}

func TestContactList(t *testing.T) {
	rows := ContactList{
		{ID: "1", Name: "Sarah", Status: models.ContactActive, DailyLimit: decimal.NewFromInt(1000), Current: decimal.NewFromInt(200)},
		{ID: "2", Name: "James", Status: models.ContactBlocked},
	}.Rows()
	assert.Equal(t, "$800.00", rows[0][6])
	assert.Equal(t, "", rows[1][4])
}
