// Package validation holds the input validators shared by the wizard and
// the verification sub-flow.
package validation

import "regexp"

// emailRegex accepts the common mailbox@domain.tld shape with a 2-6
// letter TLD. Deliverability is not checked here; a verification email
// would be the place for that.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// IsValidEmail reports whether the address has an acceptable format.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// EmailValidationMessage returns the user-facing message for an invalid
// address, or "" when the address is acceptable.
func EmailValidationMessage(email string) string {
	if email == "" {
		return "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}
