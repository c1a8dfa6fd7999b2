package service

import (
	"dockside/internal/models"
)

// Action перечисляет закрытый набор операций, проверяемых охраной доступа.
type Action string

const (
	ActionYachtCreate       Action = "yacht.create"
	ActionYachtUpdate       Action = "yacht.update"
	ActionYachtTransition   Action = "yacht.transition"
	ActionBookingCreate     Action = "booking.create"
	ActionBookingTransition Action = "booking.transition"
)

// Guard решает, может ли актор выполнить операцию над ресурсом.
// ownerID — владелец ресурса (оператор яхты); для операций, где владение
// не играет роли, передается пустая строка.
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// Authorize returns nil when the actor may perform the action, ErrForbidden
// otherwise. Unauthenticated actors are denied everything here; read-only
// listing never passes through the guard.
func (g *Guard) Authorize(actor *models.User, action Action, ownerID string) error {
	if actor == nil {
		return ErrForbidden
	}

	switch actor.Role {
	case models.RoleSuperAdmin:
		switch action {
		case ActionYachtTransition, ActionBookingTransition:
			return nil
		}
		// Super-admin модерирует, но не владеет ресурсами и не бронирует
		return ErrForbidden

	case models.RoleOperator:
		switch action {
		case ActionYachtCreate, ActionYachtUpdate:
			// Оператор действует только от собственного имени
			if actor.ID == ownerID {
				return nil
			}
		case ActionBookingTransition:
			// view only: оператор видит брони своих яхт, но не меняет статус
		}
		return ErrForbidden

	case models.RoleGuest:
		if action == ActionBookingCreate {
			return nil
		}
		return ErrForbidden
	}

	return ErrForbidden
}
