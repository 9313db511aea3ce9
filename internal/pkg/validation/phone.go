package validation

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultCountryCode is prepended to numbers entered without one.
const DefaultCountryCode = "+1"

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// FormatPhone normalizes user phone input to international display
// format. Everything except digits and + is stripped; a number without a
// country code gets the default one. Input that cannot be parsed as a
// number is returned in its cleaned form rather than rejected, so the
// caller decides whether to validate.
func FormatPhone(raw string) string {
	cleaned := nonPhoneChars.ReplaceAllString(raw, "")
	if cleaned == "" {
		return ""
	}

	withCC := cleaned
	if !strings.HasPrefix(withCC, "+") {
		withCC = DefaultCountryCode + withCC
	}

	parsed, err := phonenumbers.Parse(withCC, "")
	if err != nil {
		return cleaned
	}
	return phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL)
}

// IsValidPhone reports whether the number parses as a real, dialable
// number. Expects input already carrying a country code, as produced by
// FormatPhone.
func IsValidPhone(phone string) bool {
	parsed, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}
