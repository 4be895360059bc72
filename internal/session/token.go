package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read from its bearer token. The signature is not
// checked; the server remains the authority on validity.
type TokenInfo struct {
	UserID    string    `json:"user_id" yaml:"user_id"`
	SessionID string    `json:"session_id" yaml:"session_id"`
	TokenID   string    `json:"jti,omitempty" yaml:"jti,omitempty"`
	IssuedAt  time.Time `json:"issued_at" yaml:"issued_at"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
}

// Expired reports whether the token has an expiry before now
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// ParseToken decodes the claims of a JWT access token. The subject may be a plain id or
// an object carrying user_id and session_id.
func ParseToken(raw string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("failed to decode access token: %w", err)
	}

	info := &TokenInfo{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if jti, ok := claims["jti"].(string); ok {
		info.TokenID = jti
	}

	switch sub := claims["sub"].(type) {
	case map[string]interface{}:
		info.UserID = claimString(sub["user_id"])
		info.SessionID = claimString(sub["session_id"])
	case nil:
	default:
		info.UserID = claimString(sub)
	}
	if info.SessionID == "" {
		info.SessionID = claimString(claims["session_id"])
	}
	return info, nil
}

func claimString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}

// TokenInfo decodes the current bearer token
func (m *Manager) TokenInfo() (*TokenInfo, error) {
	token := m.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return ParseToken(token)
}
