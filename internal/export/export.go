package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rentshare/internal/domain"
	"rentshare/internal/models"

	"github.com/xuri/excelize/v2"
)

// Exporter выгружает бронирования за период в XLSX-файл.
type Exporter struct {
	bookings domain.BookingService
	dir      string
}

func NewExporter(bookings domain.BookingService, dir string) *Exporter {
	return &Exporter{bookings: bookings, dir: dir}
}

const sheetName = "Bookings"

var headers = []string{"ID", "Item ID", "Booker ID", "Start", "End", "Status", "Created"}

// ExportBookings пишет файл и возвращает путь к нему.
func (e *Exporter) ExportBookings(ctx context.Context, start, end time.Time) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	bookings, err := e.bookings.ListByDateRange(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		start.Format("2006-01-02"), end.Format("2006-01-02")))

	writeHeaders(f)
	writeRows(f, bookings)

	_ = f.SetColWidth(sheetName, "A", "G", 20)

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	path := filepath.Join(e.dir, fileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("error saving export file: %w", err)
	}

	return path, nil
}

func writeHeaders(f *excelize.File) {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheetName, col+"2", h)
	}
}

func writeRows(f *excelize.File, bookings []*models.Booking) {
	for i, b := range bookings {
		row := i + 3
		values := []any{
			b.ID,
			b.ItemID,
			b.BookerID,
			b.Start.Format("2006-01-02 15:04"),
			b.End.Format("2006-01-02 15:04"),
			string(b.Status),
			b.CreatedAt.Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			_ = f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), v)
		}
	}
}
