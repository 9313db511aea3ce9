// Package models contains the database and domain models used by the
// registration service.
package models
