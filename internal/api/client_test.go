package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/utils"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL+"/", WithTimeout(time.Second))
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLogin_Session(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jane@example.com", req.Email)
		assert.Equal(t, "secret", req.Password)

		_, _ = w.Write([]byte(`{"access_token":"tok","session_id":"s1","user":{"id":7,"email":"jane@example.com","first_name":"Jane","last_name":"Doe","mfa_enabled":true,"is_active":true}}`))
	})

	resp, err := client.Login(testContext(t), "jane@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.ID("7"), resp.User.ID)
	assert.True(t, resp.User.MfaEnabled)
	assert.False(t, resp.RequireMfa)
}

func TestLogin_MfaChallenge(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"MFA required","requireMfa":true,"userId":42}`))
	})

	resp, err := client.Login(testContext(t), "jane@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, resp.RequireMfa)
	assert.Equal(t, models.ID("42"), resp.UserID)
	assert.Empty(t, resp.AccessToken)
}

func TestErrorBodies(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusUnauthorized, `{"message":"Invalid email or password"}`, "Invalid email or password"},
		{"error field", http.StatusUnauthorized, `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"error with details", http.StatusBadRequest, `{"error":"Validation failed","details":"email is required"}`, "Validation failed: email is required"},
		{"empty body", http.StatusInternalServerError, ``, "Login failed"},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, "Login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Login(testContext(t), "jane@example.com", "secret")
			require.Error(t, err)

			apiErr, ok := utils.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestAuthenticatedHeaders(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		id := r.Header.Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		seen = append(seen, id)
		_, _ = w.Write([]byte(`{"cards":[]}`))
	})

	for i := 0; i < 2; i++ {
		_, err := client.GetCards(testContext(t), "tok-123")
		require.NoError(t, err)
	}
	require.Len(t, seen, 2)
	assert.NotEqual(t, seen[0], seen[1])
}

func TestGetCards(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cards/", r.URL.Path)
		_, _ = w.Write([]byte(`{"cards":[{"id":"c1","cardHolder":"Jane Doe","cardNumber":"4111111111111111","expiryDate":"12/27","cardType":"credit","balance":1250.5,"rewardsPoints":120}]}`))
	})

	cards, err := client.GetCards(testContext(t), "tok")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, models.ID("c1"), cards[0].ID)
	assert.True(t, cards[0].Balance.Equal(decimal.RequireFromString("1250.5")))
	assert.Equal(t, "**** 1111", cards[0].MaskedNumber())
}

func TestGetCard(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cards/c1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"c1","cardNumber":"4111111111111111","balance":10,"transactions":[{"id":"t1","amount":5,"merchant":"Cafe"}],"limits":{"daily":5000,"monthly":20000,"remaining":{"daily":4500,"monthly":19000}}}`))
	})

	card, err := client.GetCard(testContext(t), "tok", "c1")
	require.NoError(t, err)
	assert.Equal(t, models.ID("c1"), card.ID)
	require.Len(t, card.Transactions, 1)
	assert.True(t, card.Limits.Remaining.Daily.Equal(decimal.NewFromInt(4500)))
}

func TestGetTransactions_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/transactions/", r.URL.Path)
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "20", q.Get("limit"))
		assert.Equal(t, "week", q.Get("dateRange"))
		assert.Equal(t, "debit", q.Get("type"))
		assert.Equal(t, "10", q.Get("minAmount"))
		assert.Equal(t, "coffee", q.Get("search"))
		assert.False(t, q.Has("maxAmount"))
		_, _ = w.Write([]byte(`{"transactions":[{"id":1,"type":"debit","amount":4.5,"merchant":"Cafe"}],"pagination":{"total":21,"page":2,"limit":20,"pages":2}}`))
	})

	minAmount := decimal.NewFromInt(10)
	page, err := client.GetTransactions(testContext(t), "tok", models.TransactionQuery{
		Page: 2, Limit: 20, DateRange: "week", Type: "debit", MinAmount: &minAmount, Search: "coffee",
	})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, "-4.5", page.Transactions[0].SignedAmount().String())
	assert.False(t, page.Pagination.HasNext())
}

func TestPayBill(t *testing.T) {
	method := uuid.NewString()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bills/pay", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "b1", body["billId"])
		assert.Equal(t, 120.5, body["amount"])
		assert.Equal(t, method, body["paymentMethodId"])

		_, _ = w.Write([]byte(`{"message":"Bill paid successfully","billId":"b1","status":"paid","transaction_id":"t9","card_balance":879.5}`))
	})

	resp, err := client.PayBill(testContext(t), "tok", models.PayBillRequest{
		BillID:          "b1",
		Amount:          decimal.RequireFromString("120.50"),
		PaymentMethodID: models.ID(method),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BillPaid, resp.Status)
	assert.True(t, resp.CardBalance.Equal(decimal.RequireFromString("879.5")))
}

func TestGetBills_AcceptsBothDueDateSpellings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bills":[{"id":"b1","name":"Power","amount":80,"dueDate":"2024-04-01","status":"upcoming"},{"id":"b2","name":"Water","amount":20,"due_date":"2024-04-05","status":"paid"}]}`))
	})

	bills, err := client.GetBills(testContext(t), "tok")
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "2024-04-01", bills[0].DueDate)
	assert.Equal(t, "2024-04-05", bills[1].DueDate)
	assert.True(t, models.UpcomingTotal(bills).Equal(decimal.NewFromInt(80)))
}

func TestGetSpending(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "month", r.URL.Query().Get("period"))
		_, _ = w.Write([]byte(`{"categories":[{"name":"Shopping","amount":300,"percentage":60,"monthlyChange":-5,"transactions":4},{"name":"Dining","amount":200,"percentage":40,"monthlyChange":2,"transactions":3}]}`))
	})

	cats, err := client.GetSpending(testContext(t), "tok", "month")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.True(t, models.TotalSpent(cats).Equal(decimal.NewFromInt(500)))
}

func TestNotifications(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/notifications":
			_, _ = w.Write([]byte(`{"notifications":[{"id":1,"title":"Payment","read":false},{"id":2,"title":"Login","read":true}]}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/notifications/1/read":
			_, _ = w.Write([]byte(`{"message":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not found"}`))
		}
	})

	items, err := client.GetNotifications(testContext(t), "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, models.UnreadCount(items))

	require.NoError(t, client.MarkNotificationRead(testContext(t), "tok", "1"))

	err = client.MarkNotificationRead(testContext(t), "tok", "99")
	assert.True(t, utils.IsNotFoundError(err))
}

func TestUpdateProfile_SendsOnlyEditableFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"phone": "+1 555 0100"}, body)
		_, _ = w.Write([]byte(`{"message":"Profile updated successfully"}`))
	})

	phone := "+1 555 0100"
	email := "ignored@example.com"
	resp, err := client.UpdateProfile(testContext(t), "tok", models.ProfilePatch{Phone: &phone, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Profile updated successfully", resp.Message)
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportError(t *testing.T) {
	client := NewClient("http://bank.invalid", WithHTTPClient(failingDoer{}))
	_, err := client.GetBills(context.Background(), "tok")
	require.Error(t, err)
	_, isAPI := utils.AsAPIError(err)
	assert.False(t, isAPI)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRaw(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bills/pay", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "3", body["billId"])

		_, _ = w.Write([]byte(`{"message":"ok","card_balance":120.5}`))
	})

	out, err := client.Raw(testContext(t), "post", "api/bills/pay", "tok", json.RawMessage(`{"billId":"3"}`))
	require.NoError(t, err)
	m, ok := out.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", m["message"])
	assert.Equal(t, 120.5, m["card_balance"])
}
