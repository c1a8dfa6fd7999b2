package models

import "time"

// Session is the server-side record behind an issued bearer token.
// Deleting it revokes the token before its natural expiry.
type Session struct {
	ID        string    `json:"id"` // jti claim
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
