package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpiredBoundary(t *testing.T) {
	expiry := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	v := &PhoneVerification{ExpiresAt: expiry}

	// Usable strictly before the expiry instant.
	assert.False(t, v.Expired(expiry.Add(-time.Second)))
	assert.True(t, v.Expired(expiry))
	assert.True(t, v.Expired(expiry.Add(time.Second)))
}

func TestIsValidGrade(t *testing.T) {
	assert.True(t, IsValidGrade("9th Grade"))
	assert.True(t, IsValidGrade("12th Grade"))
	assert.False(t, IsValidGrade("8th Grade"))
	assert.False(t, IsValidGrade(""))
}

func TestIsCatalogSubject(t *testing.T) {
	assert.True(t, IsCatalogSubject("SAT"))
	assert.True(t, IsCatalogSubject("AP English Literature"))
	assert.False(t, IsCatalogSubject("sat"))
	assert.False(t, IsCatalogSubject("Underwater Basket Weaving"))
}
