package service

import (
	"context"
	"strconv"
	"strings"

	"dockside/internal/database"
	"dockside/internal/domain"
	"dockside/internal/events"
	"dockside/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type YachtService struct {
	store  domain.Store
	guard  *Guard
	bus    domain.EventPublisher
	logger *zerolog.Logger
}

func NewYachtService(store domain.Store, guard *Guard, bus domain.EventPublisher, logger *zerolog.Logger) *YachtService {
	return &YachtService{store: store, guard: guard, bus: bus, logger: logger}
}

// YachtInput carries listing fields as they arrive over the wire. Numeric
// fields are strings on purpose: parsing is strict and rejects anything a
// lenient decoder would silently coerce.
type YachtInput struct {
	Name        string
	Description string
	Location    string
	YachtType   string
	Capacity    string
	Bedrooms    string
	HasCatering bool
	HourlyPrice string
	DailyPrice  string
	Images      []string
	Amenities   []string
	Included    []string
	Excluded    []string
	Terms       []string
}

func (s *YachtService) Create(ctx context.Context, actor *models.User, input YachtInput) (*models.Yacht, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if err := s.guard.Authorize(actor, ActionYachtCreate, actor.ID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name", "required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, invalid("description", "required")
	}
	if !models.ValidLocation(input.Location) {
		return nil, invalid("location", "unknown location")
	}
	if strings.TrimSpace(input.YachtType) == "" {
		return nil, invalid("yacht_type", "required")
	}
	if len(input.Images) == 0 {
		return nil, invalid("images", "at least one image is required")
	}

	capacity, err := parsePositiveInt(input.Capacity)
	if err != nil {
		return nil, invalid("capacity", "must be a positive integer")
	}
	bedrooms, err := parseNonNegativeInt(input.Bedrooms)
	if err != nil {
		return nil, invalid("bedrooms", "must be a non-negative integer")
	}
	hourly, err := parsePositiveAmount(input.HourlyPrice)
	if err != nil {
		return nil, invalid("hourly_price", "must be a positive amount")
	}
	daily, err := parsePositiveAmount(input.DailyPrice)
	if err != nil {
		return nil, invalid("daily_price", "must be a positive amount")
	}

	yacht := &models.Yacht{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Location:    input.Location,
		YachtType:   strings.TrimSpace(input.YachtType),
		Capacity:    capacity,
		Bedrooms:    bedrooms,
		HasCatering: input.HasCatering,
		HourlyPrice: hourly,
		DailyPrice:  daily,
		Images:      input.Images,
		Amenities:   input.Amenities,
		Included:    input.Included,
		Excluded:    input.Excluded,
		Terms:       input.Terms,
		Status:      models.YachtStatusPending,
		OperatorID:  actor.ID,
	}
	if err := s.store.CreateYacht(ctx, yacht); err != nil {
		return nil, err
	}

	s.publishStatus(events.EventYachtCreated, yacht.ID, "", yacht.Status, actor.ID)
	s.logger.Info().Str("yacht_id", yacht.ID).Str("operator_id", actor.ID).Msg("yacht listed, pending approval")
	return yacht, nil
}

// YachtPatch holds the fields a PATCH request actually carried. Nil pointer
// means "not provided"; only provided fields reach the store.
type YachtPatch struct {
	Name        *string
	Description *string
	Location    *string
	YachtType   *string
	Capacity    *string
	Bedrooms    *string
	HasCatering *bool
	HourlyPrice *string
	DailyPrice  *string
	Images      *[]string
	Amenities   *[]string
	Included    *[]string
	Excluded    *[]string
	Terms       *[]string
	Rating      *string
}

func (s *YachtService) Update(ctx context.Context, actor *models.User, id string, patch YachtPatch) (*models.Yacht, error) {
	yacht, err := s.store.GetYacht(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(actor, ActionYachtUpdate, yacht.OperatorID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalid("name", "cannot be empty")
		}
		fields["name"] = name
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		if desc == "" {
			return nil, invalid("description", "cannot be empty")
		}
		fields["description"] = desc
	}
	if patch.Location != nil {
		if !models.ValidLocation(*patch.Location) {
			return nil, invalid("location", "unknown location")
		}
		fields["location"] = *patch.Location
	}
	if patch.YachtType != nil {
		yt := strings.TrimSpace(*patch.YachtType)
		if yt == "" {
			return nil, invalid("yacht_type", "cannot be empty")
		}
		fields["yacht_type"] = yt
	}
	if patch.Capacity != nil {
		capacity, err := parsePositiveInt(*patch.Capacity)
		if err != nil {
			return nil, invalid("capacity", "must be a positive integer")
		}
		fields["capacity"] = capacity
	}
	if patch.Bedrooms != nil {
		bedrooms, err := parseNonNegativeInt(*patch.Bedrooms)
		if err != nil {
			return nil, invalid("bedrooms", "must be a non-negative integer")
		}
		fields["bedrooms"] = bedrooms
	}
	if patch.HasCatering != nil {
		fields["has_catering"] = *patch.HasCatering
	}
	if patch.HourlyPrice != nil {
		hourly, err := parsePositiveAmount(*patch.HourlyPrice)
		if err != nil {
			return nil, invalid("hourly_price", "must be a positive amount")
		}
		fields["hourly_price"] = hourly
	}
	if patch.DailyPrice != nil {
		daily, err := parsePositiveAmount(*patch.DailyPrice)
		if err != nil {
			return nil, invalid("daily_price", "must be a positive amount")
		}
		fields["daily_price"] = daily
	}
	if patch.Images != nil {
		if len(*patch.Images) == 0 {
			return nil, invalid("images", "at least one image is required")
		}
		fields["images"] = *patch.Images
	}
	if patch.Amenities != nil {
		fields["amenities"] = *patch.Amenities
	}
	if patch.Included != nil {
		fields["included"] = *patch.Included
	}
	if patch.Excluded != nil {
		fields["excluded"] = *patch.Excluded
	}
	if patch.Terms != nil {
		fields["terms"] = *patch.Terms
	}
	if patch.Rating != nil {
		rating, err := strconv.ParseFloat(strings.TrimSpace(*patch.Rating), 64)
		if err != nil || rating < 0 || rating > 5 {
			return nil, invalid("rating", "must be between 0 and 5")
		}
		fields["rating"] = rating
	}

	return s.store.UpdateYachtFields(ctx, id, fields)
}

// Approve переводит лот в approved. Повторный вызов для уже одобренного
// лота не ошибка.
func (s *YachtService) Approve(ctx context.Context, actor *models.User, id string) (*models.Yacht, error) {
	return s.transition(ctx, actor, id, models.YachtStatusApproved)
}

func (s *YachtService) Reject(ctx context.Context, actor *models.User, id string) (*models.Yacht, error) {
	return s.transition(ctx, actor, id, models.YachtStatusRejected)
}

// Disable убирает лот из выдачи, не удаляя его. Пока не выведен в API.
func (s *YachtService) Disable(ctx context.Context, actor *models.User, id string) (*models.Yacht, error) {
	return s.transition(ctx, actor, id, models.YachtStatusDisabled)
}

func (s *YachtService) transition(ctx context.Context, actor *models.User, id, status string) (*models.Yacht, error) {
	if err := s.guard.Authorize(actor, ActionYachtTransition, ""); err != nil {
		return nil, err
	}

	yacht, err := s.store.GetYacht(ctx, id)
	if err != nil {
		return nil, err
	}
	if yacht.Status == status {
		return yacht, nil
	}

	updated, err := s.store.UpdateYachtStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publishStatus(events.EventYachtStatus, id, yacht.Status, status, actor.ID)
	s.logger.Info().Str("yacht_id", id).Str("status", status).Str("by", actor.ID).Msg("yacht status changed")
	return updated, nil
}

// List returns yachts visible to the actor: guests see the approved
// catalogue, operators their own fleet, the super-admin everything.
// YachtListOptions сужают выборку в пределах того, что роль и так видит.
type YachtListOptions struct {
	Status     string
	OperatorID string
}

func (s *YachtService) List(ctx context.Context, actor *models.User, opts YachtListOptions) ([]*models.Yacht, error) {
	if opts.Status != "" && !models.ValidYachtStatus(opts.Status) {
		return nil, invalid("status", "unknown status")
	}

	// Базовый фильтр задает роль, опции только сужают его.
	filter := database.YachtFilter{Status: models.YachtStatusApproved}
	if actor != nil {
		switch actor.Role {
		case models.RoleSuperAdmin:
			filter = database.YachtFilter{Status: opts.Status, OperatorID: opts.OperatorID}
		case models.RoleOperator:
			filter = database.YachtFilter{Status: opts.Status, OperatorID: actor.ID}
		}
	}
	return s.store.ListYachts(ctx, filter)
}

func (s *YachtService) Get(ctx context.Context, id string) (*models.Yacht, error) {
	return s.store.GetYacht(ctx, id)
}

func (s *YachtService) publishStatus(event, id, oldStatus, newStatus, by string) {
	if s.bus == nil {
		return
	}
	payload := events.StatusChangedPayload{
		EntityID:  id,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: by,
	}
	if err := s.bus.PublishJSON(event, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", event).Msg("failed to publish event")
	}
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, invalid("value", "must be positive")
	}
	return n, nil
}

// parsePositiveAmount отклоняет нулевые цены: лот с нулевым тарифом дал бы
// бронь с нулевой итоговой стоимостью.
func parsePositiveAmount(raw string) (models.Amount, error) {
	amount, err := models.ParseAmount(raw)
	if err != nil || amount <= 0 {
		return 0, invalid("value", "must be positive")
	}
	return amount, nil
}

func parseNonNegativeInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, invalid("value", "must be non-negative")
	}
	return n, nil
}
