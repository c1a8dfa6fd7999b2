package domain

import (
	"context"
	"time"

	"dockside/internal/database"
	"dockside/internal/events"
	"dockside/internal/models"
)

// Store is the persistence port of the workflow core. Single-row writes,
// no multi-row transactions.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	CreateYacht(ctx context.Context, yacht *models.Yacht) error
	GetYacht(ctx context.Context, id string) (*models.Yacht, error)
	UpdateYachtFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Yacht, error)
	UpdateYachtStatus(ctx context.Context, id string, status string) (*models.Yacht, error)
	ListYachts(ctx context.Context, filter database.YachtFilter) ([]*models.Yacht, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter database.BookingFilter) ([]*models.Booking, error)
	CountBookingsByStatus(ctx context.Context) (map[string]int, error)
}

// SessionRepository keeps issued sessions and login-attempt counters.
type SessionRepository interface {
	SaveSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	CheckLoginRate(ctx context.Context, email string, limit int, window time.Duration) (bool, error)
}

// EventPublisher emits domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// NotificationSink receives booking-created events. Delivery is
// best-effort: a sink error never affects the booking itself.
type NotificationSink interface {
	Notify(ctx context.Context, event events.BookingCreatedPayload) error
	Name() string
}
