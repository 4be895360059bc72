package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/finsec/cli/internal/models"
)

// GetProfile fetches the signed-in user's profile
func (c *Client) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	var resp models.Profile
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/users/profile",
		token:    token,
		out:      &resp,
		fallback: "Failed to fetch profile",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile sends the editable fields of patch
func (c *Client) UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/api/users/profile",
		token:    token,
		body:     patch,
		out:      &resp,
		fallback: "Failed to update profile",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCards lists linked payment cards with their balances
func (c *Client) GetCards(ctx context.Context, token string) ([]models.Card, error) {
	var resp models.CardsResponse
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/cards/",
		token:    token,
		out:      &resp,
		fallback: "Failed to fetch cards",
	})
	if err != nil {
		return nil, err
	}
	return resp.Cards, nil
}

// GetCard fetches one card with its recent transactions and limits
func (c *Client) GetCard(ctx context.Context, token string, id models.ID) (*models.CardDetails, error) {
	var resp models.CardDetails
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/cards/" + url.PathEscape(id.String()),
		token:    token,
		out:      &resp,
		fallback: "Failed to fetch card details",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTransactions fetches one page of the transaction history
func (c *Client) GetTransactions(ctx context.Context, token string, q models.TransactionQuery) (*models.TransactionPage, error) {
	var resp models.TransactionPage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/transactions/",
		token:    token,
		query:    q.Values(),
		out:      &resp,
		fallback: "Failed to fetch transactions",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
