package models

import "time"

// CodeTTL is the default lifetime of a verification code.
const CodeTTL = 10 * time.Minute

// PhoneVerification is one outstanding OTP challenge. The row is owned by
// the database; callers hold only the ID while the challenge is pending.
type PhoneVerification struct {
	ID          string
	PhoneNumber string
	Code        string
	Verified    bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the code can no longer be confirmed at the given
// instant. A code is usable strictly before its expiry time.
func (v *PhoneVerification) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

// VerificationFlowState names the states of the phone verification
// sub-flow.
type VerificationFlowState string

const (
	// VerificationAwaitingPhone waits for a phone number submission.
	VerificationAwaitingPhone VerificationFlowState = "AWAITING_PHONE"
	// VerificationAwaitingCode waits for the OTP entered by the user.
	VerificationAwaitingCode VerificationFlowState = "AWAITING_CODE"
	// VerificationVerified is the successful terminal state.
	VerificationVerified VerificationFlowState = "VERIFIED"
	// VerificationCancelled is the terminal exit taken when the user
	// closes the flow.
	VerificationCancelled VerificationFlowState = "CANCELLED"
)
