package models

import "time"

// ParentInfo holds the parent/guardian contact record attached to a
// student. The phone number is stored only after it has been verified.
type ParentInfo struct {
	ID        int64
	StudentID int64
	FullName  string
	Email     string
	Phone     string
	CreatedAt time.Time
}
