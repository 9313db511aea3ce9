package services

import (
	"context"
	"time"

	"github.com/eduadmin/enroll/internal/app/models"
)

// Services defined in this package:
// - OnboardingService: drives the registration wizard and the submission adapter
// - VerificationService: runs the phone verification sub-flow
// - PaymentService: starts and completes hosted checkouts

// UserStore is the account persistence needed by the submission adapter.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// StudentStore is the student persistence needed by the submission adapter.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
}

// ParentStore is the parent-contact persistence needed by the submission
// adapter.
type ParentStore interface {
	Create(ctx context.Context, parent *models.ParentInfo) (int64, error)
}

// VerificationStore is the OTP persistence needed by the verification
// sub-flow.
type VerificationStore interface {
	Create(ctx context.Context, v *models.PhoneVerification) error
	GetByID(ctx context.Context, id string) (*models.PhoneVerification, error)
	MarkVerified(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

// PaymentStore is the payment persistence needed by checkout handling.
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) (int64, error)
	SetCheckoutSessionID(ctx context.Context, id int64, sessionID string) error
	MarkCompleted(ctx context.Context, sessionID string) error
}
