package validation

import (
	"errors"
	"strings"
	"unicode"
)

// ValidatePhone checks a customer-entered phone number. Formatting
// characters are tolerated; what matters is a plausible digit count so
// dispatch can actually call back.
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errors.New("phone number is required")
	}

	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == '.' || r == ' ':
			// formatting, fine
		default:
			return errors.New("phone number contains invalid characters")
		}
	}

	if digits < 7 || digits > 15 {
		return errors.New("phone number must have 7 to 15 digits")
	}

	return nil
}
