package validation

import (
	"errors"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone canonicalizes an Indian mobile number to +91XXXXXXXXXX.
// Accepted inputs: 10 local digits, or +91 followed by 10 digits, with
// spaces allowed anywhere. Everything else is rejected.
func NormalizePhone(raw string) (string, error) {
	phone := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if phone == "" {
		return "", ErrInvalidPhone
	}

	if digits, ok := strings.CutPrefix(phone, "+91"); ok {
		if !isTenDigits(digits) {
			return "", ErrInvalidPhone
		}
		return "+91" + digits, nil
	}

	if !isTenDigits(phone) {
		return "", ErrInvalidPhone
	}
	return "+91" + phone, nil
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
