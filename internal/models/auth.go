package models

// User is the account record returned by the login and MFA endpoints
type User struct {
	ID          ID     `json:"id" yaml:"id"`
	Email       string `json:"email" yaml:"email"`
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	PhoneNumber string `json:"phone_number" yaml:"phone_number"`
	MfaEnabled  bool   `json:"mfa_enabled" yaml:"mfa_enabled"`
	IsActive    bool   `json:"is_active" yaml:"is_active"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse covers both login outcomes: a session (AccessToken and User set) or an
// MFA challenge (RequireMfa and UserID set).
type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	SessionID   string `json:"session_id"`
	User        *User  `json:"user,omitempty"`
	RequireMfa  bool   `json:"requireMfa"`
	UserID      ID     `json:"userId"`
}

// VerifyMfaRequest carries the OTP together with the credentials of the pending login
type VerifyMfaRequest struct {
	UserID   ID     `json:"userId"`
	OtpCode  string `json:"otpCode"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MfaSecret is returned when a user enrolls an authenticator app
type MfaSecret struct {
	Message string `json:"message" yaml:"message"`
	Secret  string `json:"mfa_secret" yaml:"mfa_secret"`
	TOTPURI string `json:"totp_uri" yaml:"totp_uri"`
}
