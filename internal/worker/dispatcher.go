// Package worker асинхронно доставляет уведомления о бронях, чтобы
// внешние каналы не задерживали ответ на создание брони.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"dockside/internal/domain"
	"dockside/internal/events"
	"dockside/internal/metrics"
	"dockside/internal/models"

	"github.com/rs/zerolog"
)

// ErrQueueFull возвращается, когда очередь уведомлений переполнена.
// Событие при этом теряется: доставка best-effort.
var ErrQueueFull = errors.New("notification queue is full")

// RetryPolicy defines exponential backoff parameters.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    5,
		InitialDelay:  2 * time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 2,
	}
}

// NextDelay returns delay for a given attempt (1-based) with clamping.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = time.Second
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}

	delay := float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1))
	d := time.Duration(delay)
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

// Dispatcher буферизует события и доставляет их приемнику с повторами.
type Dispatcher struct {
	sink   domain.NotificationSink
	queue  chan events.BookingCreatedPayload
	retry  RetryPolicy
	logger *zerolog.Logger
}

func NewDispatcher(sink domain.NotificationSink, retry RetryPolicy, logger *zerolog.Logger) *Dispatcher {
	if retry.MaxRetries == 0 {
		retry = DefaultRetryPolicy()
	}
	return &Dispatcher{
		sink:   sink,
		queue:  make(chan events.BookingCreatedPayload, models.WorkerQueueSize),
		retry:  retry,
		logger: logger,
	}
}

// Enqueue ставит событие в очередь без блокировки.
func (d *Dispatcher) Enqueue(ctx context.Context, event events.BookingCreatedPayload) error {
	select {
	case d.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// ListenBus подписывает воркер на события создания брони: сервис публикует
// их в шину, очередь уведомлений наполняется отсюда.
func (d *Dispatcher) ListenBus(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, func(event *events.Event) error {
		var payload events.BookingCreatedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode booking event: %w", err)
		}
		if err := d.Enqueue(context.Background(), payload); err != nil {
			d.logger.Warn().Str("booking_id", payload.BookingID).Msg("notification queue full, event dropped")
			return err
		}
		return nil
	})
}

// Start запускает цикл доставки; останавливается по ctx.
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info().Str("sink", d.sink.Name()).Msg("notification dispatcher started")
	defer d.logger.Info().Msg("notification dispatcher stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

// deliver пытается доставить событие, выдерживая паузы между попытками.
func (d *Dispatcher) deliver(ctx context.Context, event events.BookingCreatedPayload) {
	var lastErr error
	for attempt := 1; attempt <= d.retry.MaxRetries; attempt++ {
		lastErr = d.sink.Notify(ctx, event)
		if lastErr == nil {
			return
		}

		d.logger.Warn().
			Err(lastErr).
			Str("booking_id", event.BookingID).
			Int("attempt", attempt).
			Msg("notification delivery failed")

		if attempt == d.retry.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.retry.NextDelay(attempt)):
		}
	}

	metrics.IncNotificationFailure(d.sink.Name())
	d.logger.Error().
		Err(lastErr).
		Str("booking_id", event.BookingID).
		Msg("notification delivery gave up after retries")
}
