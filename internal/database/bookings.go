package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dockside/internal/models"
)

const bookingColumns = `id, yacht_id, yacht_name, guest_id, guest_name, guest_email,
	guest_phone, booking_date, start_time, end_time, hours, total_price,
	special_request, status, created_at`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	_, err := db.ExecContext(ctx, query,
		booking.ID,
		booking.YachtID,
		booking.YachtName,
		booking.GuestID,
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.Hours,
		int64(booking.TotalPrice),
		booking.SpecialRequest,
		booking.Status,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	booking.CreatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	row := db.QueryRowContext(ctx, query, id)
	booking, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id string, status string) (*models.Booking, error) {
	result, err := db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return db.GetBooking(ctx, id)
}

// BookingFilter ограничивает выборку по статусу, гостю и/или яхте
type BookingFilter struct {
	Status  string
	GuestID string
	YachtID string
}

func (db *DB) ListBookings(ctx context.Context, filter BookingFilter) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var conds []string
	var args []interface{}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.GuestID != "" {
		conds = append(conds, "guest_id = ?")
		args = append(args, filter.GuestID)
	}
	if filter.YachtID != "" {
		conds = append(conds, "yacht_id = ?")
		args = append(args, filter.YachtID)
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
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// CountBookingsByStatus возвращает количество бронирований по каждому статусу
func (db *DB) CountBookingsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	var total int64
	var special sql.NullString
	err := row.Scan(
		&b.ID, &b.YachtID, &b.YachtName, &b.GuestID, &b.GuestName, &b.GuestEmail,
		&b.GuestPhone, &b.Date, &b.StartTime, &b.EndTime, &b.Hours, &total,
		&special, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.TotalPrice = models.Amount(total)
	b.SpecialRequest = special.String
	return &b, nil
}
