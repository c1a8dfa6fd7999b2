package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dockside/internal/models"
)

const yachtColumns = `id, name, description, location, yacht_type, capacity, bedrooms,
	has_catering, hourly_price, daily_price, images, amenities, included, excluded,
	terms, status, operator_id, rating, created_at`

func (db *DB) CreateYacht(ctx context.Context, yacht *models.Yacht) error {
	query := `INSERT INTO yachts (` + yachtColumns + `)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	_, err := db.ExecContext(ctx, query,
		yacht.ID,
		yacht.Name,
		yacht.Description,
		yacht.Location,
		yacht.YachtType,
		yacht.Capacity,
		yacht.Bedrooms,
		yacht.HasCatering,
		int64(yacht.HourlyPrice),
		int64(yacht.DailyPrice),
		marshalList(yacht.Images),
		marshalList(yacht.Amenities),
		marshalList(yacht.Included),
		marshalList(yacht.Excluded),
		marshalList(yacht.Terms),
		yacht.Status,
		yacht.OperatorID,
		yacht.Rating,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create yacht: %w", err)
	}
	yacht.CreatedAt = now
	return nil
}

func (db *DB) GetYacht(ctx context.Context, id string) (*models.Yacht, error) {
	query := `SELECT ` + yachtColumns + ` FROM yachts WHERE id = ?`
	row := db.QueryRowContext(ctx, query, id)
	yacht, err := scanYacht(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get yacht: %w", err)
	}
	return yacht, nil
}

// UpdateYachtFields применяет частичное обновление: меняются только
// переданные колонки, остальные не трогаем.
func (db *DB) UpdateYachtFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Yacht, error) {
	if len(fields) == 0 {
		return db.GetYacht(ctx, id)
	}

	setClause := ""
	args := make([]interface{}, 0, len(fields)+1)
	for _, col := range yachtPatchOrder {
		val, ok := fields[col]
		if !ok {
			continue
		}
		if setClause != "" {
			setClause += ", "
		}
		setClause += col + " = ?"
		args = append(args, patchValue(val))
	}
	if setClause == "" {
		return db.GetYacht(ctx, id)
	}
	args = append(args, id)

	result, err := db.ExecContext(ctx, `UPDATE yachts SET `+setClause+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update yacht: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return db.GetYacht(ctx, id)
}

// patchValue приводит значения к типам, которые понимает драйвер:
// списки сериализуются в JSON, суммы — в int64.
func patchValue(val interface{}) interface{} {
	switch v := val.(type) {
	case []string:
		return marshalList(v)
	case models.Amount:
		return int64(v)
	default:
		return val
	}
}

// yachtPatchOrder fixes a deterministic column order for partial updates.
var yachtPatchOrder = []string{
	"name", "description", "location", "yacht_type", "capacity", "bedrooms",
	"has_catering", "hourly_price", "daily_price", "images", "amenities",
	"included", "excluded", "terms", "status", "rating",
}

func (db *DB) UpdateYachtStatus(ctx context.Context, id string, status string) (*models.Yacht, error) {
	result, err := db.ExecContext(ctx, `UPDATE yachts SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update yacht status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return db.GetYacht(ctx, id)
}

// YachtFilter ограничивает выборку по статусу и/или владельцу
type YachtFilter struct {
	Status     string
	OperatorID string
}

func (db *DB) ListYachts(ctx context.Context, filter YachtFilter) ([]*models.Yacht, error) {
	query := `SELECT ` + yachtColumns + ` FROM yachts`
	var conds []string
	var args []interface{}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.OperatorID != "" {
		conds = append(conds, "operator_id = ?")
		args = append(args, filter.OperatorID)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list yachts: %w", err)
	}
	defer rows.Close()

	var yachts []*models.Yacht
	for rows.Next() {
		yacht, err := scanYacht(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan yacht: %w", err)
		}
		yachts = append(yachts, yacht)
	}
	return yachts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanYacht(row rowScanner) (*models.Yacht, error) {
	var y models.Yacht
	var hourly, daily int64
	var images, amenities, included, excluded, terms string
	err := row.Scan(
		&y.ID, &y.Name, &y.Description, &y.Location, &y.YachtType,
		&y.Capacity, &y.Bedrooms, &y.HasCatering, &hourly, &daily,
		&images, &amenities, &included, &excluded, &terms,
		&y.Status, &y.OperatorID, &y.Rating, &y.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	y.HourlyPrice = models.Amount(hourly)
	y.DailyPrice = models.Amount(daily)
	y.Images = unmarshalList(images)
	y.Amenities = unmarshalList(amenities)
	y.Included = unmarshalList(included)
	y.Excluded = unmarshalList(excluded)
	y.Terms = unmarshalList(terms)
	return &y, nil
}

func marshalList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}
