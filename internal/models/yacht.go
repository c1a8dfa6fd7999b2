package models

import "time"

type Yacht struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	YachtType   string    `json:"yacht_type"`
	Capacity    int       `json:"capacity"`
	Bedrooms    int       `json:"bedrooms"`
	HasCatering bool      `json:"has_catering"`
	HourlyPrice Amount    `json:"hourly_price"`
	DailyPrice  Amount    `json:"daily_price"`
	Images      []string  `json:"images"`
	Amenities   []string  `json:"amenities"`
	Included    []string  `json:"included"`
	Excluded    []string  `json:"excluded"`
	Terms       []string  `json:"terms"`
	Status      string    `json:"status"` // pending, approved, rejected, disabled
	OperatorID  string    `json:"operator_id"`
	Rating      float64   `json:"rating"` // 0..5
	CreatedAt   time.Time `json:"created_at"`
}
