package dto

// SendCodeRequest submits the phone number to verify.
type SendCodeRequest struct {
	Phone string `json:"phone" binding:"required" example:"(512) 555-1234"`
}

// ConfirmCodeRequest submits the OTP the user received.
type ConfirmCodeRequest struct {
	Code string `json:"code" binding:"required" example:"482019"`
}

// VerificationResponse reports the state of the verification sub-flow.
type VerificationResponse struct {
	State string `json:"state" example:"AWAITING_CODE"`
	// Phone is the formatted number the code was sent to, or the verified
	// number once the flow completes.
	Phone string `json:"phone,omitempty" example:"+1 512-555-1234"`
}
