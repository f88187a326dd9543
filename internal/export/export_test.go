package export

import (
	"context"
	"testing"
	"time"

	"rentshare/internal/database"
	"rentshare/internal/models"
	"rentshare/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestExportBookings(t *testing.T) {
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	owner := &models.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, db.CreateUser(ctx, owner))
	booker := &models.User{Name: "Booker", Email: "booker@example.com"}
	require.NoError(t, db.CreateUser(ctx, booker))
	item := &models.Item{Name: "Drill", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, item))

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    start,
		End:      start.Add(24 * time.Hour),
		Status:   models.StatusWaiting,
	}
	require.NoError(t, db.CreateBooking(ctx, booking))

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	bookings := service.NewBookingService(db, fixedClock{now: now}, &logger)
	exporter := NewExporter(bookings, t.TempDir())

	path, err := exporter.ExportBookings(ctx, start.AddDate(0, 0, -1), start.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	status, err := f.GetCellValue(sheetName, "F3")
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusWaiting), status)
}

func TestExportBookings_EmptyRange(t *testing.T) {
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	bookings := service.NewBookingService(db, fixedClock{now: now}, &logger)
	exporter := NewExporter(bookings, t.TempDir())

	// Пустой период тоже дает валидный файл с заголовками.
	path, err := exporter.ExportBookings(context.Background(), now, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.FileExists(t, path)
}
