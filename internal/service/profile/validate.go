package profile

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	minMobile = 1_000_000_000
	maxMobile = 9_999_999_999
)

// validateContact enforces the mobile and email format rules. Zero and empty mean absent.
func validateContact(mobile int64, email string) error {
	if mobile != 0 && (mobile < minMobile || mobile > maxMobile) {
		return fmt.Errorf("%w: mobile number must have exactly 10 digits", ErrInvalidData)
	}
	if email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != strings.TrimSpace(email) {
		return fmt.Errorf("%w: email address is not valid", ErrInvalidData)
	}
	return nil
}
