package service

import (
	"context"
	"time"

	"dockside/internal/database"
	"dockside/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) CreateYacht(ctx context.Context, yacht *models.Yacht) error {
	return m.Called(ctx, yacht).Error(0)
}

func (m *mockStore) GetYacht(ctx context.Context, id string) (*models.Yacht, error) {
	args := m.Called(ctx, id)
	if y := args.Get(0); y != nil {
		return y.(*models.Yacht), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) UpdateYachtFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Yacht, error) {
	args := m.Called(ctx, id, fields)
	if y := args.Get(0); y != nil {
		return y.(*models.Yacht), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) UpdateYachtStatus(ctx context.Context, id string, status string) (*models.Yacht, error) {
	args := m.Called(ctx, id, status)
	if y := args.Get(0); y != nil {
		return y.(*models.Yacht), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) ListYachts(ctx context.Context, filter database.YachtFilter) ([]*models.Yacht, error) {
	args := m.Called(ctx, filter)
	if y := args.Get(0); y != nil {
		return y.([]*models.Yacht), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) UpdateBookingStatus(ctx context.Context, id string, status string) (*models.Booking, error) {
	args := m.Called(ctx, id, status)
	if b := args.Get(0); b != nil {
		return b.(*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) ListBookings(ctx context.Context, filter database.BookingFilter) ([]*models.Booking, error) {
	args := m.Called(ctx, filter)
	if b := args.Get(0); b != nil {
		return b.([]*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) CountBookingsByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.(map[string]int), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) SaveSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessions) GetSession(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessions) DeleteSession(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessions) CheckLoginRate(ctx context.Context, email string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, email, limit, window)
	return args.Bool(0), args.Error(1)
}
