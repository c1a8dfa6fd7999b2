package service

import (
	"context"
	"strings"
	"time"

	"dockside/internal/database"
	"dockside/internal/domain"
	"dockside/internal/events"
	"dockside/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type BookingService struct {
	store  domain.Store
	guard  *Guard
	bus    domain.EventPublisher
	logger *zerolog.Logger
}

func NewBookingService(store domain.Store, guard *Guard, bus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{store: store, guard: guard, bus: bus, logger: logger}
}

type BookingInput struct {
	YachtID        string
	Date           string // YYYY-MM-DD
	StartTime      string // HH:MM
	EndTime        string // HH:MM
	Hours          string
	SpecialRequest string
}

// Create оформляет бронь. Лот виден гостю только в статусе approved,
// поэтому неодобренная яхта для него не существует вовсе.
func (s *BookingService) Create(ctx context.Context, actor *models.User, input BookingInput) (*models.Booking, error) {
	if err := s.guard.Authorize(actor, ActionBookingCreate, ""); err != nil {
		return nil, err
	}

	if input.YachtID == "" {
		return nil, invalid("yacht_id", "required")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, invalid("date", "must be a date in YYYY-MM-DD form")
	}
	start, err := time.Parse("15:04", input.StartTime)
	if err != nil {
		return nil, invalid("start_time", "must be a time in HH:MM form")
	}
	end, err := time.Parse("15:04", input.EndTime)
	if err != nil {
		return nil, invalid("end_time", "must be a time in HH:MM form")
	}
	if !end.After(start) {
		return nil, invalid("end_time", "must be after start_time")
	}
	hours, err := parsePositiveInt(input.Hours)
	if err != nil {
		return nil, invalid("hours", "must be a positive integer")
	}

	yacht, err := s.store.GetYacht(ctx, input.YachtID)
	if err != nil {
		return nil, err
	}
	if yacht.Status != models.YachtStatusApproved {
		return nil, database.ErrNotFound
	}

	booking := &models.Booking{
		ID:             uuid.NewString(),
		YachtID:        yacht.ID,
		YachtName:      yacht.Name,
		GuestID:        actor.ID,
		GuestName:      actor.Name,
		GuestEmail:     actor.Email,
		GuestPhone:     actor.Phone,
		Date:           input.Date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Hours:          hours,
		TotalPrice:     charterPrice(yacht, hours),
		SpecialRequest: strings.TrimSpace(input.SpecialRequest),
		Status:         models.BookingStatusPending,
	}
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.notifyCreated(booking)
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("yacht_id", booking.YachtID).
		Int("hours", booking.Hours).
		Str("total", booking.TotalPrice.String()).
		Msg("booking created")
	return booking, nil
}

// charterPrice: от восьми часов действует суточный тариф, ниже — почасовой.
func charterPrice(yacht *models.Yacht, hours int) models.Amount {
	if hours >= models.DailyRateHours {
		return yacht.DailyPrice
	}
	return yacht.HourlyPrice.Mul(hours)
}

// UpdateStatus re-classifies a booking. Any status can move to any other,
// including back to pending.
func (s *BookingService) UpdateStatus(ctx context.Context, actor *models.User, id, status string) (*models.Booking, error) {
	if err := s.guard.Authorize(actor, ActionBookingTransition, ""); err != nil {
		return nil, err
	}
	if !models.ValidBookingStatus(status) {
		return nil, invalid("status", "unknown booking status")
	}

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == status {
		return booking, nil
	}

	updated, err := s.store.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		payload := events.StatusChangedPayload{
			EntityID:  id,
			OldStatus: booking.Status,
			NewStatus: status,
			ChangedBy: actor.ID,
		}
		if err := s.bus.PublishJSON(events.EventBookingStatus, payload); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish event")
		}
	}

	s.logger.Info().Str("booking_id", id).Str("status", status).Str("by", actor.ID).Msg("booking status changed")
	return updated, nil
}

// List returns bookings visible to the actor: guests see their own,
// everyone else sees the full ledger.
// BookingListOptions сужают выборку; гость в любом случае видит только свое.
type BookingListOptions struct {
	Status  string
	GuestID string
	YachtID string
}

func (s *BookingService) List(ctx context.Context, actor *models.User, opts BookingListOptions) ([]*models.Booking, error) {
	if opts.Status != "" && !models.ValidBookingStatus(opts.Status) {
		return nil, invalid("status", "unknown status")
	}

	filter := database.BookingFilter{Status: opts.Status, GuestID: opts.GuestID, YachtID: opts.YachtID}
	if actor != nil && actor.Role == models.RoleGuest {
		filter.GuestID = actor.ID
	}
	return s.store.ListBookings(ctx, filter)
}

func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

// StatusCounts возвращает распределение броней по статусам для отчетов.
func (s *BookingService) StatusCounts(ctx context.Context) (map[string]int, error) {
	return s.store.CountBookingsByStatus(ctx)
}

// notifyCreated раздает событие подписчикам шины; воркер уведомлений
// подписан на нее и сам ставит событие в очередь. Доставка best-effort:
// бронь уже записана.
func (s *BookingService) notifyCreated(booking *models.Booking) {
	payload := events.BookingCreatedPayload{
		BookingID:      booking.ID,
		YachtID:        booking.YachtID,
		YachtName:      booking.YachtName,
		GuestName:      booking.GuestName,
		GuestEmail:     booking.GuestEmail,
		GuestPhone:     booking.GuestPhone,
		Date:           booking.Date,
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		Hours:          booking.Hours,
		TotalPrice:     booking.TotalPrice,
		SpecialRequest: booking.SpecialRequest,
	}

	if s.bus != nil {
		if err := s.bus.PublishJSON(events.EventBookingCreated, payload); err != nil {
			s.logger.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to publish event")
		}
	}
}
