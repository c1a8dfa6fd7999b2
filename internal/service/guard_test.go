package service

import (
	"testing"

	"dockside/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestGuardMatrix(t *testing.T) {
	guard := NewGuard()
	operator := &models.User{ID: "op1", Role: models.RoleOperator}
	admin := &models.User{ID: "sa1", Role: models.RoleSuperAdmin}
	guest := &models.User{ID: "g1", Role: models.RoleGuest}

	tests := []struct {
		name    string
		actor   *models.User
		action  Action
		ownerID string
		allowed bool
	}{
		{"operator creates own yacht", operator, ActionYachtCreate, "op1", true},
		{"operator updates own yacht", operator, ActionYachtUpdate, "op1", true},
		{"operator updates foreign yacht", operator, ActionYachtUpdate, "op2", false},
		{"operator approves yacht", operator, ActionYachtTransition, "", false},
		{"operator mutates booking", operator, ActionBookingTransition, "", false},
		{"operator books", operator, ActionBookingCreate, "", false},
		{"admin approves yacht", admin, ActionYachtTransition, "", true},
		{"admin mutates booking", admin, ActionBookingTransition, "", true},
		{"admin creates yacht", admin, ActionYachtCreate, "sa1", false},
		{"admin books", admin, ActionBookingCreate, "", false},
		{"guest books", guest, ActionBookingCreate, "", true},
		{"guest creates yacht", guest, ActionYachtCreate, "g1", false},
		{"guest mutates booking", guest, ActionBookingTransition, "", false},
		{"anonymous denied", nil, ActionBookingCreate, "", false},
		{"unknown role denied", &models.User{ID: "x", Role: "auditor"}, ActionYachtCreate, "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Authorize(tt.actor, tt.action, tt.ownerID)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}
