package notify

import (
	"context"
	"errors"
	"testing"

	"dockside/internal/events"
	"dockside/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() events.BookingCreatedPayload {
	return events.BookingCreatedPayload{
		BookingID:  "b1",
		YachtID:    "y1",
		YachtName:  "Sea Breeze",
		GuestName:  "Guest",
		GuestEmail: "g@x.com",
		GuestPhone: "+971501234567",
		Date:       "2026-09-15",
		StartTime:  "10:00",
		EndTime:    "13:00",
		Hours:      3,
		TotalPrice: models.Amount(450000),
	}
}

func TestMessageFormat(t *testing.T) {
	msg := Message(sampleEvent())
	assert.Contains(t, msg, "Sea Breeze")
	assert.Contains(t, msg, "2026-09-15 10:00-13:00 (3 h)")
	assert.Contains(t, msg, "AED 4,500")
	assert.NotContains(t, msg, "Special request")

	event := sampleEvent()
	event.SpecialRequest = "birthday decoration"
	assert.Contains(t, Message(event), "Special request: birthday decoration")
}

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramSink(t *testing.T) {
	sender := &fakeSender{}
	sink := &TelegramSink{bot: sender, chatID: 42}

	require.NoError(t, sink.Notify(context.Background(), sampleEvent()))
	require.Len(t, sender.sent, 1)

	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "Sea Breeze")
}

func TestTelegramSinkError(t *testing.T) {
	sink := &TelegramSink{bot: &fakeSender{err: errors.New("blocked")}, chatID: 42}
	assert.Error(t, sink.Notify(context.Background(), sampleEvent()))
}

type stubSink struct {
	name  string
	err   error
	calls int
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Notify(ctx context.Context, event events.BookingCreatedPayload) error {
	s.calls++
	return s.err
}

func TestMultiDeliversToAllSinks(t *testing.T) {
	logger := zerolog.Nop()
	first := &stubSink{name: "first", err: errors.New("down")}
	second := &stubSink{name: "second"}

	multi := NewMulti(&logger, first, second)
	err := multi.Notify(context.Background(), sampleEvent())

	// Сбой первого не мешает доставке во второй
	assert.Error(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestLogSink(t *testing.T) {
	logger := zerolog.Nop()
	sink := NewLogSink(&logger)
	assert.Equal(t, "log", sink.Name())
	assert.NoError(t, sink.Notify(context.Background(), sampleEvent()))
}
