package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"5125551234", "+1 512-555-1234"},
		{"(512) 555-1234", "+1 512-555-1234"},
		{"512.555.1234", "+1 512-555-1234"},
		{"+1 512 555 1234", "+1 512-555-1234"},
		{"+44 20 7946 0958", "+44 20 7946 0958"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatPhone(tt.raw), "raw %q", tt.raw)
	}
}

func TestFormatPhoneIsIdempotent(t *testing.T) {
	inputs := []string{"5125551234", "(512) 555-1234", "+44 20 7946 0958"}
	for _, raw := range inputs {
		once := FormatPhone(raw)
		assert.Equal(t, once, FormatPhone(once), "raw %q", raw)
	}
}

func TestFormatPhoneUnparseableFallsBackToCleaned(t *testing.T) {
	// Junk input keeps its digits and + but loses everything else.
	assert.Equal(t, "++", FormatPhone("+-+-"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+1 512-555-1234"))
	assert.True(t, IsValidPhone("+44 20 7946 0958"))

	assert.False(t, IsValidPhone(""))
	assert.False(t, IsValidPhone("123"))
	assert.False(t, IsValidPhone("+1123"))
	assert.False(t, IsValidPhone("not a number"))
}
