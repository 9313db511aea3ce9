package models

import "time"

// Student represents a student profile created by a completed
// registration, referencing the account that owns it.
type Student struct {
	ID            int64
	UserID        int64
	FullName      string
	Grade         string
	SchoolName    string
	City          string
	Zipcode       string
	Subjects      []string
	OtherSubjects string
	CreatedAt     time.Time
}
