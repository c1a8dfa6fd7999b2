package database

import (
	"context"
	"testing"

	"dockside/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetYacht(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	yacht := testYacht("op-1")
	require.NoError(t, db.CreateYacht(ctx, yacht))

	got, err := db.GetYacht(ctx, yacht.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sea Breeze", got.Name)
	assert.Equal(t, models.Amount(100000), got.HourlyPrice)
	assert.Equal(t, []string{"a.jpg"}, got.Images)
	assert.Equal(t, []string{"No smoking"}, got.Terms)
	assert.Equal(t, models.YachtStatusPending, got.Status)
}

func TestGetYacht_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetYacht(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateYachtFields_PartialPatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	yacht := testYacht("op-1")
	require.NoError(t, db.CreateYacht(ctx, yacht))

	updated, err := db.UpdateYachtFields(ctx, yacht.ID, map[string]interface{}{
		"hourly_price": int64(200000),
	})
	require.NoError(t, err)

	// меняется только переданное поле
	assert.Equal(t, models.Amount(200000), updated.HourlyPrice)
	assert.Equal(t, yacht.Name, updated.Name)
	assert.Equal(t, yacht.DailyPrice, updated.DailyPrice)
	assert.Equal(t, yacht.Capacity, updated.Capacity)
	assert.Equal(t, []string{"a.jpg"}, updated.Images)
}

func TestUpdateYachtFields_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.UpdateYachtFields(context.Background(), uuid.NewString(), map[string]interface{}{
		"name": "Ghost",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateYachtStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	yacht := testYacht("op-1")
	require.NoError(t, db.CreateYacht(ctx, yacht))

	got, err := db.UpdateYachtStatus(ctx, yacht.ID, models.YachtStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.YachtStatusApproved, got.Status)

	_, err = db.UpdateYachtStatus(ctx, uuid.NewString(), models.YachtStatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListYachts_Filters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	y1 := testYacht("op-1")
	y2 := testYacht("op-2")
	y2.Name = "Pearl"
	require.NoError(t, db.CreateYacht(ctx, y1))
	require.NoError(t, db.CreateYacht(ctx, y2))
	_, err := db.UpdateYachtStatus(ctx, y2.ID, models.YachtStatusApproved)
	require.NoError(t, err)

	all, err := db.ListYachts(ctx, YachtFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved, err := db.ListYachts(ctx, YachtFilter{Status: models.YachtStatusApproved})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Pearl", approved[0].Name)

	byOp, err := db.ListYachts(ctx, YachtFilter{OperatorID: "op-1"})
	require.NoError(t, err)
	require.Len(t, byOp, 1)
	assert.Equal(t, y1.ID, byOp[0].ID)

	both, err := db.ListYachts(ctx, YachtFilter{Status: models.YachtStatusPending, OperatorID: "op-2"})
	require.NoError(t, err)
	assert.Empty(t, both)
}
