package events

import (
	"encoding/json"
	"sync"
	"time"

	"dockside/internal/models"
)

const (
	EventBookingCreated = "booking_created"
	EventBookingStatus  = "booking_status_changed"
	EventYachtCreated   = "yacht_created"
	EventYachtStatus    = "yacht_status_changed"
)

// BookingCreatedPayload carries the snapshot a notification consumer needs:
// who booked which yacht, for which window, and at what price.
type BookingCreatedPayload struct {
	BookingID      string        `json:"booking_id"`
	YachtID        string        `json:"yacht_id"`
	YachtName      string        `json:"yacht_name"`
	GuestName      string        `json:"guest_name"`
	GuestEmail     string        `json:"guest_email"`
	GuestPhone     string        `json:"guest_phone"`
	Date           string        `json:"date"`
	StartTime      string        `json:"start_time"`
	EndTime        string        `json:"end_time"`
	Hours          int           `json:"hours"`
	TotalPrice     models.Amount `json:"total_price"`
	SpecialRequest string        `json:"special_request,omitempty"`
}

// StatusChangedPayload describes a yacht or booking status transition.
type StatusChangedPayload struct {
	EntityID  string `json:"entity_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedBy string `json:"changed_by,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
