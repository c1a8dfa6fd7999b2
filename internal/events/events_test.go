package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishJSON(t *testing.T) {
	bus := NewEventBus()

	var received []*Event
	bus.Subscribe(EventBookingCreated, func(e *Event) error {
		received = append(received, e)
		return nil
	})

	payload := BookingCreatedPayload{
		BookingID: "b-1",
		YachtName: "Sea Breeze",
		Hours:     5,
	}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	require.Len(t, received, 1)
	assert.Equal(t, EventBookingCreated, received[0].Type)
	assert.False(t, received[0].CreatedAt.IsZero())

	var got BookingCreatedPayload
	require.NoError(t, json.Unmarshal(received[0].Payload, &got))
	assert.Equal(t, "Sea Breeze", got.YachtName)
}

func TestEventBus_NoSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.NoError(t, bus.PublishJSON(EventYachtStatus, StatusChangedPayload{EntityID: "y-1"}))
}

func TestEventBus_NilBus(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, nil))
}

func TestEventBus_MultipleHandlers(t *testing.T) {
	bus := NewEventBus()
	count := 0
	bus.Subscribe(EventYachtCreated, func(e *Event) error { count++; return nil })
	bus.Subscribe(EventYachtCreated, func(e *Event) error { count++; return nil })

	require.NoError(t, bus.PublishJSON(EventYachtCreated, map[string]string{"id": "y-1"}))
	assert.Equal(t, 2, count)
}
