package models

import "time"

// Booking keeps denormalized yacht/guest fields as snapshots taken at
// creation time. They are never refreshed from the live records.
type Booking struct {
	ID             string    `json:"id"`
	YachtID        string    `json:"yacht_id"`
	YachtName      string    `json:"yacht_name"`
	GuestID        string    `json:"guest_id"`
	GuestName      string    `json:"guest_name"`
	GuestEmail     string    `json:"guest_email"`
	GuestPhone     string    `json:"guest_phone"`
	Date           string    `json:"date"`       // YYYY-MM-DD
	StartTime      string    `json:"start_time"` // HH:MM
	EndTime        string    `json:"end_time"`   // HH:MM
	Hours          int       `json:"hours"`
	TotalPrice     Amount    `json:"total_price"`
	SpecialRequest string    `json:"special_request,omitempty"`
	Status         string    `json:"status"` // pending, confirmed, rejected
	CreatedAt      time.Time `json:"created_at"`
}
