package models

import "time"

// User represents an account created for a registered student. The
// password field always holds a bcrypt hash, never the plaintext
// credential.
type User struct {
	ID        int64
	Email     string
	Password  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
