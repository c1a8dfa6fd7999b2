// Package notify доставляет уведомления о новых бронях во внешние каналы.
// Все приемники best-effort: сбой доставки никогда не трогает саму бронь.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dockside/internal/domain"
	"dockside/internal/events"

	"github.com/rs/zerolog"
)

// Message renders the booking event as the text all sinks share.
func Message(event events.BookingCreatedPayload) string {
	var b strings.Builder
	b.WriteString("New booking received\n")
	fmt.Fprintf(&b, "Yacht: %s\n", event.YachtName)
	fmt.Fprintf(&b, "Date: %s %s-%s (%d h)\n", event.Date, event.StartTime, event.EndTime, event.Hours)
	fmt.Fprintf(&b, "Guest: %s, %s, %s\n", event.GuestName, event.GuestEmail, event.GuestPhone)
	fmt.Fprintf(&b, "Total: %s", event.TotalPrice.String())
	if event.SpecialRequest != "" {
		fmt.Fprintf(&b, "\nSpecial request: %s", event.SpecialRequest)
	}
	return b.String()
}

// Multi рассылает событие во все приемники. Каждый приемник получает
// событие независимо от сбоев остальных.
type Multi struct {
	sinks  []domain.NotificationSink
	logger *zerolog.Logger
}

func NewMulti(logger *zerolog.Logger, sinks ...domain.NotificationSink) *Multi {
	return &Multi{sinks: sinks, logger: logger}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Notify(ctx context.Context, event events.BookingCreatedPayload) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Notify(ctx, event); err != nil {
			m.logger.Warn().Err(err).Str("sink", sink.Name()).Str("booking_id", event.BookingID).Msg("notification delivery failed")
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// LogSink пишет уведомление в журнал. Выполняет роль почтового канала,
// пока реальная отправка писем не подключена.
type LogSink struct {
	logger *zerolog.Logger
}

func NewLogSink(logger *zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Notify(ctx context.Context, event events.BookingCreatedPayload) error {
	s.logger.Info().
		Str("booking_id", event.BookingID).
		Str("yacht", event.YachtName).
		Str("guest_email", event.GuestEmail).
		Str("total", event.TotalPrice.String()).
		Msg("booking notification")
	return nil
}
