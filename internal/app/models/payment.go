package models

import "time"

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Payment records a checkout initiated for a course. The actual charge is
// delegated to the hosted checkout provider; this row only tracks intent
// and completion.
type Payment struct {
	ID                int64
	Email             string
	CourseID          string
	CourseName        string
	AmountCents       int64
	Status            string
	CheckoutSessionID string
	CreatedAt         time.Time
}
