package api

import (
	"context"
	"net/http"

	"github.com/finsec/cli/internal/models"
)

// Login posts credentials. The response is either a session or an MFA challenge.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/login",
		body:     models.LoginRequest{Email: email, Password: password},
		out:      &resp,
		fallback: "Login failed",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyMfa completes a login that required a verification code
func (c *Client) VerifyMfa(ctx context.Context, req models.VerifyMfaRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/verify-mfa",
		body:     req,
		out:      &resp,
		fallback: "Invalid verification code",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateMfaSecret enrolls the user in MFA and returns the new TOTP secret
func (c *Client) GenerateMfaSecret(ctx context.Context, userID models.ID) (*models.MfaSecret, error) {
	var resp models.MfaSecret
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/generate-mfa-secret",
		body:     map[string]models.ID{"userId": userID},
		out:      &resp,
		fallback: "Failed to generate MFA secret",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout ends the server-side session
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/auth/logout",
		token:    token,
		body:     struct{}{},
		fallback: "Logout failed",
	})
}
