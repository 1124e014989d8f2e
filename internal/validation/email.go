package validation

import (
	"errors"
	"net/mail"
)

// ValidateEmail validates email format and length
// Uses Go's built-in net/mail parser which follows RFC 5322
func ValidateEmail(email string) error {
	// RFC 5321: total address max 254 characters with @
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	if email == "" {
		return errors.New("email address is required")
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return errors.New("invalid email address format")
	}

	return nil
}
