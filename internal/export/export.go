// Package export готовит Excel-отчеты по броням для супер-админа.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dockside/internal/domain"
	"dockside/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

type Exporter struct {
	store  domain.Store
	dir    string
	logger *zerolog.Logger
}

func NewExporter(store domain.Store, dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{store: store, dir: dir, logger: logger}
}

// BookingsReport выгружает все брони в xlsx: строка на бронь плюс сводка
// по статусам внизу листа. Возвращает путь к файлу.
func (e *Exporter) BookingsReport(ctx context.Context, bookings []*models.Booking) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	counts, err := e.store.CountBookingsByStatus(ctx)
	if err != nil {
		return "", fmt.Errorf("error counting bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"ID", "Yacht", "Guest", "Email", "Phone",
		"Date", "Start", "End", "Hours", "Total", "Status", "Special request", "Created",
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(bookingsSheet, cell, header)
		_ = f.SetCellStyle(bookingsSheet, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 2
		values := []interface{}{
			b.ID, b.YachtName, b.GuestName, b.GuestEmail, b.GuestPhone,
			b.Date, b.StartTime, b.EndTime, b.Hours, b.TotalPrice.String(),
			b.Status, b.SpecialRequest, b.CreatedAt.Format("02.01.2006 15:04"),
		}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(bookingsSheet, cell, val)
		}
	}

	// Сводка по статусам под таблицей
	summaryRow := len(bookings) + 3
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	_ = f.SetCellValue(bookingsSheet, cell, "Totals by status")
	_ = f.SetCellStyle(bookingsSheet, cell, cell, summaryStyle)
	for _, status := range []string{models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusRejected} {
		summaryRow++
		nameCell, _ := excelize.CoordinatesToCellName(1, summaryRow)
		countCell, _ := excelize.CoordinatesToCellName(2, summaryRow)
		_ = f.SetCellValue(bookingsSheet, nameCell, status)
		_ = f.SetCellValue(bookingsSheet, countCell, counts[status])
	}

	_ = f.SetColWidth(bookingsSheet, "A", "A", 38)
	_ = f.SetColWidth(bookingsSheet, "B", "E", 22)
	_ = f.SetColWidth(bookingsSheet, "F", "K", 14)
	_ = f.SetColWidth(bookingsSheet, "L", "M", 24)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.dir, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel report created")
	return filePath, nil
}
