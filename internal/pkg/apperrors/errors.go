package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")
	ErrValidationFailed = errors.New("validation failed")
	ErrExternalService  = errors.New("external service error")
)

// Onboarding session errors
var (
	ErrSessionNotFound  = errors.New("onboarding session not found")
	ErrStepIncomplete   = errors.New("current step is incomplete")
	ErrNoPreviousStep   = errors.New("no previous step")
	ErrNotSubmittable   = errors.New("registration is not ready for submission")
	ErrAlreadySubmitted = errors.New("registration already submitted")
	ErrWrongStep        = errors.New("operation not valid for the current step")
	ErrInvalidGrade     = errors.New("invalid grade")
	ErrUnknownSubject   = errors.New("subject is not in the catalog")
)

// Account errors
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email")
)

// Phone verification errors
var (
	ErrInvalidPhone          = errors.New("invalid phone number")
	ErrOTPMalformed          = errors.New("please enter a valid 6-digit OTP")
	ErrOTPInvalid            = errors.New("invalid OTP")
	ErrOTPExpired            = errors.New("OTP has expired")
	ErrVerificationFailed    = errors.New("verification failed")
	ErrVerificationNotFound  = errors.New("verification request not found")
	ErrResendThrottled       = errors.New("please wait before requesting a new code")
	ErrVerificationFlowState = errors.New("operation not valid in the current verification state")
)

// Payment errors
var (
	ErrPaymentNotFound = errors.New("payment not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
