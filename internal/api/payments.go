package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/finsec/cli/internal/models"
)

// GetBills lists the user's bills
func (c *Client) GetBills(ctx context.Context, token string) ([]models.Bill, error) {
	var resp models.BillsResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/bills",
		token:    token,
		out:      &resp,
		fallback: "Failed to fetch bills",
	})
	if err != nil {
		return nil, err
	}
	return resp.Bills, nil
}

// PayBill pays a bill in full from a payment card
func (c *Client) PayBill(ctx context.Context, token string, req models.PayBillRequest) (*models.PayBillResponse, error) {
	var resp models.PayBillResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/bills/pay",
		token:    token,
		body:     req,
		out:      &resp,
		fallback: "Payment failed",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSpending returns the spending breakdown for week, month or year
func (c *Client) GetSpending(ctx context.Context, token, period string) ([]models.SpendingCategory, error) {
	var resp models.SpendingResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/analytics/spending",
		token:    token,
		query:    url.Values{"period": {period}},
		out:      &resp,
		fallback: "Failed to fetch analytics",
	})
	if err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// GetNotifications lists in-app notifications
func (c *Client) GetNotifications(ctx context.Context, token string) ([]models.Notification, error) {
	var resp models.NotificationsResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/notifications",
		token:    token,
		out:      &resp,
		fallback: "Failed to fetch notifications",
	})
	if err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// MarkNotificationRead flags one notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, token string, id models.ID) error {
	return c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/api/notifications/" + url.PathEscape(id.String()) + "/read",
		token:    token,
		fallback: "Failed to update notification",
	})
}
