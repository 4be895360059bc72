package utils

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{6}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
)

// OTPLength is the number of digits of a TOTP verification code.
const OTPLength = 6

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return NewValidationError("email", "email is required")
	}

	if !emailPattern.MatchString(email) {
		return NewValidationError("email", "please enter a valid email address")
	}

	return nil
}

// ValidatePassword only checks presence; strength is the server's concern.
func ValidatePassword(password string) error {
	if password == "" {
		return NewValidationError("password", "password is required")
	}
	return nil
}

// ValidateOTP validates a verification code: exactly six ASCII digits.
func ValidateOTP(code string) error {
	if len(code) < OTPLength {
		return NewValidationError("otp", "please enter the complete 6-digit code")
	}
	if !otpPattern.MatchString(code) {
		return NewValidationError("otp", "code must be 6 digits")
	}
	return nil
}

// ValidateRequired validates that a string is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, fieldName+" is required")
	}
	return nil
}

// ValidateName validates a name field
func ValidateName(name, fieldName string) error {
	if err := ValidateRequired(name, fieldName); err != nil {
		return err
	}

	if len(name) > 100 {
		return NewValidationError(fieldName, "must be at most 100 characters")
	}

	return nil
}

// ValidatePhone validates a phone number
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return NewValidationError("phone", "invalid phone number format")
	}
	return nil
}

// ValidatePaymentMethodID checks the card id is a UUID, as the bills endpoint requires.
func ValidatePaymentMethodID(id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("payment_method", "please select a payment method")
	}
	if _, err := uuid.Parse(id); err != nil {
		return NewValidationError("payment_method", "payment method ID format is invalid")
	}
	return nil
}

// ValidatePeriod validates an analytics period
func ValidatePeriod(period string) error {
	switch period {
	case "week", "month", "year":
		return nil
	default:
		return NewValidationError("period", "must be week, month, or year")
	}
}

// ValidateURL validates a server URL
func ValidateURL(raw string) error {
	if err := ValidateRequired(raw, "URL"); err != nil {
		return err
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError("URL", "invalid URL format")
	}

	return nil
}
