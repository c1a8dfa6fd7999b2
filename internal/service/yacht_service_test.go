package service

import (
	"context"
	"testing"

	"dockside/internal/database"
	"dockside/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newYachtService(store *mockStore) *YachtService {
	logger := zerolog.Nop()
	return NewYachtService(store, NewGuard(), nil, &logger)
}

func operatorActor() *models.User {
	return &models.User{ID: "op1", Email: "op@x.com", Role: models.RoleOperator}
}

func adminActor() *models.User {
	return &models.User{ID: "sa1", Email: "sa@x.com", Role: models.RoleSuperAdmin}
}

func guestActor() *models.User {
	return &models.User{ID: "g1", Email: "g@x.com", Name: "Guest", Phone: "+971501234567", Role: models.RoleGuest}
}

func validYachtInput() YachtInput {
	return YachtInput{
		Name:        "Sea Breeze",
		Description: "50ft cruiser",
		Location:    models.LocationMarina,
		YachtType:   "Cruiser",
		Capacity:    "12",
		Bedrooms:    "3",
		HourlyPrice: "1000",
		DailyPrice:  "6000",
		Images:      []string{"a.jpg"},
	}
}

func TestYachtCreatePending(t *testing.T) {
	store := &mockStore{}
	store.On("CreateYacht", mock.Anything, mock.MatchedBy(func(y *models.Yacht) bool {
		return y.Status == models.YachtStatusPending && y.OperatorID == "op1"
	})).Return(nil)

	svc := newYachtService(store)
	yacht, err := svc.Create(context.Background(), operatorActor(), validYachtInput())
	require.NoError(t, err)
	assert.Equal(t, models.YachtStatusPending, yacht.Status)
	assert.Equal(t, models.Amount(100000), yacht.HourlyPrice) // 1000 AED в филсах
	assert.Equal(t, models.Amount(600000), yacht.DailyPrice)
	store.AssertExpectations(t)
}

func TestYachtCreateValidation(t *testing.T) {
	svc := newYachtService(&mockStore{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*YachtInput)
		field  string
	}{
		{"empty name", func(in *YachtInput) { in.Name = "  " }, "name"},
		{"empty description", func(in *YachtInput) { in.Description = "" }, "description"},
		{"unknown location", func(in *YachtInput) { in.Location = "Atlantis" }, "location"},
		{"no images", func(in *YachtInput) { in.Images = nil }, "images"},
		{"zero capacity", func(in *YachtInput) { in.Capacity = "0" }, "capacity"},
		{"non-numeric capacity", func(in *YachtInput) { in.Capacity = "tw" }, "capacity"},
		{"negative bedrooms", func(in *YachtInput) { in.Bedrooms = "-1" }, "bedrooms"},
		{"garbled hourly price", func(in *YachtInput) { in.HourlyPrice = "12.3.4" }, "hourly_price"},
		{"negative daily price", func(in *YachtInput) { in.DailyPrice = "-5" }, "daily_price"},
		{"zero hourly price", func(in *YachtInput) { in.HourlyPrice = "0" }, "hourly_price"},
		{"zero daily price", func(in *YachtInput) { in.DailyPrice = "0.00" }, "daily_price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validYachtInput()
			tt.mutate(&input)
			_, err := svc.Create(ctx, operatorActor(), input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestYachtCreateForbiddenForGuest(t *testing.T) {
	svc := newYachtService(&mockStore{})
	_, err := svc.Create(context.Background(), guestActor(), validYachtInput())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestYachtCreateForbiddenForAnonymous(t *testing.T) {
	svc := newYachtService(&mockStore{})
	_, err := svc.Create(context.Background(), nil, validYachtInput())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestYachtUpdateZeroPriceRejected(t *testing.T) {
	store := &mockStore{}
	store.On("GetYacht", mock.Anything, "y1").Return(&models.Yacht{ID: "y1", OperatorID: "op1"}, nil)

	svc := newYachtService(store)
	zero := "0"
	_, err := svc.Update(context.Background(), operatorActor(), "y1", YachtPatch{HourlyPrice: &zero})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hourly_price", verr.Field)
	store.AssertNotCalled(t, "UpdateYachtFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestYachtUpdatePartialPatch(t *testing.T) {
	existing := &models.Yacht{ID: "y1", OperatorID: "op1", Status: models.YachtStatusApproved}
	store := &mockStore{}
	store.On("GetYacht", mock.Anything, "y1").Return(existing, nil)
	store.On("UpdateYachtFields", mock.Anything, "y1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		// Только переданное поле попадает в патч
		return len(fields) == 1 && fields["hourly_price"] == models.Amount(200000)
	})).Return(existing, nil)

	svc := newYachtService(store)
	price := "2000"
	_, err := svc.Update(context.Background(), operatorActor(), "y1", YachtPatch{HourlyPrice: &price})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestYachtUpdateRating(t *testing.T) {
	existing := &models.Yacht{ID: "y1", OperatorID: "op1", Status: models.YachtStatusApproved}
	store := &mockStore{}
	store.On("GetYacht", mock.Anything, "y1").Return(existing, nil)
	store.On("UpdateYachtFields", mock.Anything, "y1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		return len(fields) == 1 && fields["rating"] == 4.5
	})).Return(existing, nil)

	svc := newYachtService(store)
	rating := "4.5"
	_, err := svc.Update(context.Background(), operatorActor(), "y1", YachtPatch{Rating: &rating})
	require.NoError(t, err)

	bad := "5.5"
	_, err = svc.Update(context.Background(), operatorActor(), "y1", YachtPatch{Rating: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rating", verr.Field)
}

func TestYachtUpdateForeignYachtForbidden(t *testing.T) {
	store := &mockStore{}
	store.On("GetYacht", mock.Anything, "y1").Return(&models.Yacht{ID: "y1", OperatorID: "other"}, nil)

	svc := newYachtService(store)
	name := "Taken Over"
	_, err := svc.Update(context.Background(), operatorActor(), "y1", YachtPatch{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
	store.AssertNotCalled(t, "UpdateYachtFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestYachtUpdateMissing(t *testing.T) {
	store := &mockStore{}
	store.On("GetYacht", mock.Anything, "nope").Return(nil, database.ErrNotFound)

	svc := newYachtService(store)
	_, err := svc.Update(context.Background(), operatorActor(), "nope", YachtPatch{})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestYachtApprove(t *testing.T) {
	pending := &models.Yacht{ID: "y1", Status: models.YachtStatusPending}
	approved := &models.Yacht{ID: "y1", Status: models.YachtStatusApproved}
	store := &mockStore{}
	store.On("GetYacht", mock.Anything, "y1").Return(pending, nil)
	store.On("UpdateYachtStatus", mock.Anything, "y1", models.YachtStatusApproved).Return(approved, nil)

	svc := newYachtService(store)
	yacht, err := svc.Approve(context.Background(), adminActor(), "y1")
	require.NoError(t, err)
	assert.Equal(t, models.YachtStatusApproved, yacht.Status)
}

func TestYachtApproveIdempotent(t *testing.T) {
	approved := &models.Yacht{ID: "y1", Status: models.YachtStatusApproved}
	store := &mockStore{}
	store.On("GetYacht", mock.Anything, "y1").Return(approved, nil)

	svc := newYachtService(store)
	yacht, err := svc.Approve(context.Background(), adminActor(), "y1")
	require.NoError(t, err)
	assert.Equal(t, models.YachtStatusApproved, yacht.Status)
	store.AssertNotCalled(t, "UpdateYachtStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestYachtTransitionOnlySuperAdmin(t *testing.T) {
	svc := newYachtService(&mockStore{})
	_, err := svc.Approve(context.Background(), operatorActor(), "y1")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Reject(context.Background(), guestActor(), "y1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestYachtListVisibility(t *testing.T) {
	store := &mockStore{}
	store.On("ListYachts", mock.Anything, database.YachtFilter{Status: models.YachtStatusApproved}).Return([]*models.Yacht{}, nil).Once()
	store.On("ListYachts", mock.Anything, database.YachtFilter{OperatorID: "op1"}).Return([]*models.Yacht{}, nil).Once()
	store.On("ListYachts", mock.Anything, database.YachtFilter{}).Return([]*models.Yacht{}, nil).Once()

	svc := newYachtService(store)
	ctx := context.Background()

	_, err := svc.List(ctx, guestActor(), YachtListOptions{})
	require.NoError(t, err)
	_, err = svc.List(ctx, operatorActor(), YachtListOptions{})
	require.NoError(t, err)
	_, err = svc.List(ctx, adminActor(), YachtListOptions{})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestYachtListOptions(t *testing.T) {
	store := &mockStore{}
	store.On("ListYachts", mock.Anything, database.YachtFilter{Status: models.YachtStatusPending, OperatorID: "op7"}).
		Return([]*models.Yacht{}, nil).Once()
	// Оператор не может подсмотреть чужие лоты через operator_id
	store.On("ListYachts", mock.Anything, database.YachtFilter{Status: models.YachtStatusPending, OperatorID: "op1"}).
		Return([]*models.Yacht{}, nil).Once()

	svc := newYachtService(store)
	ctx := context.Background()

	_, err := svc.List(ctx, adminActor(), YachtListOptions{Status: models.YachtStatusPending, OperatorID: "op7"})
	require.NoError(t, err)
	_, err = svc.List(ctx, operatorActor(), YachtListOptions{Status: models.YachtStatusPending, OperatorID: "op7"})
	require.NoError(t, err)

	_, err = svc.List(ctx, adminActor(), YachtListOptions{Status: "archived"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
	store.AssertExpectations(t)
}
