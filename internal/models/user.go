package models

import "time"

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"-"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role"` // guest, operator, super_admin
	CreatedAt      time.Time `json:"created_at"`
}

// Sanitized returns a copy safe for API responses (digest never leaves the core).
func (u User) Sanitized() User {
	u.PasswordDigest = ""
	return u
}
