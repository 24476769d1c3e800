// Package models defines the persisted record shapes of the note service.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialized into any outward-facing response.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
